package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/recurbill/recurbill/internal/api/dto"
	ierr "github.com/recurbill/recurbill/internal/errors"
	"github.com/recurbill/recurbill/internal/logger"
	"github.com/recurbill/recurbill/internal/service"
	"github.com/recurbill/recurbill/internal/types"
)

type ScheduleHandler struct {
	service service.ScheduleService
	log     *logger.Logger
}

func NewScheduleHandler(service service.ScheduleService, log *logger.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a billing schedule
// @Description Create a recurring billing schedule for a customer
// @Tags Schedules
// @Accept json
// @Produce json
// @Param schedule body dto.CreateScheduleRequest true "Schedule"
// @Success 201 {object} dto.ScheduleResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /schedules [post]
func (h *ScheduleHandler) CreateSchedule(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateSchedule(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a billing schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	resp, err := h.service.GetSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List billing schedules
// @Tags Schedules
// @Produce json
// @Param filter query types.ScheduleFilter false "Filter"
// @Success 200 {object} dto.ListSchedulesResponse
// @Router /schedules [get]
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var filter types.ScheduleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid filter parameters").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.ListSchedules(c.Request.Context(), &filter)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a billing schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param schedule body dto.UpdateScheduleRequest true "Schedule"
// @Success 200 {object} dto.ScheduleResponse
// @Router /schedules/{id} [put]
func (h *ScheduleHandler) UpdateSchedule(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateSchedule(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Delete a billing schedule
// @Tags Schedules
// @Param id path string true "Schedule ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	if err := h.service.DeleteSchedule(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Pause a billing schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Router /schedules/{id}/pause [post]
func (h *ScheduleHandler) PauseSchedule(c *gin.Context) {
	resp, err := h.service.PauseSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Resume a paused billing schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Router /schedules/{id}/resume [post]
func (h *ScheduleHandler) ResumeSchedule(c *gin.Context) {
	resp, err := h.service.ResumeSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel a billing schedule
// @Description Cancel a billing schedule. Cancellation is terminal.
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse
// @Router /schedules/{id}/cancel [post]
func (h *ScheduleHandler) CancelSchedule(c *gin.Context) {
	resp, err := h.service.CancelSchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Preview the next billing date
// @Description Compute the schedule's next billing date without side effects
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Param from query string false "Date to advance from (defaults to the schedule's next billing date)"
// @Success 200 {object} dto.PreviewNextBillingDateResponse
// @Router /schedules/{id}/preview [get]
func (h *ScheduleHandler) PreviewNextBillingDate(c *gin.Context) {
	var from *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("Invalid from date, expected YYYY-MM-DD").
				Mark(ierr.ErrValidation))
			return
		}
		from = &parsed
	}

	resp, err := h.service.PreviewNextBillingDate(c.Request.Context(), c.Param("id"), from)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List schedules due for billing
// @Tags Schedules
// @Produce json
// @Param as_of query string false "Cutoff date (defaults to now)"
// @Success 200 {object} dto.ListSchedulesResponse
// @Router /schedules/due [get]
func (h *ScheduleHandler) ListDueSchedules(c *gin.Context) {
	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			c.Error(ierr.WithError(err).
				WithHint("Invalid as_of date, expected YYYY-MM-DD").
				Mark(ierr.ErrValidation))
			return
		}
		asOf = parsed
	}

	resp, err := h.service.ListDueSchedules(c.Request.Context(), asOf)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Run billing for a schedule
// @Description Generate an invoice from the schedule and advance it
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 201 {object} dto.BillingRunResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Router /schedules/{id}/bill [post]
func (h *ScheduleHandler) RunBilling(c *gin.Context) {
	resp, err := h.service.RunBilling(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
