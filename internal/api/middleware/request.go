package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/recurbill/recurbill/internal/types"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTenantID  = "X-Tenant-ID"
)

// RequestIDMiddleware attaches a request ID and the caller's tenant to the
// request context
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}
	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)

	tenantID := c.GetHeader(HeaderTenantID)
	if tenantID == "" {
		tenantID = types.DefaultTenantID
	}
	ctx = types.SetTenantID(ctx, tenantID)

	c.Request = c.Request.WithContext(ctx)

	c.Header(HeaderRequestID, requestID)

	c.Next()
}
