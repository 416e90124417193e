package types

// Status is a type for the status of a resource in the database
// This is used to track the lifecycle of a resource and to determine if it
// should be included in queries
// Any changes to this type should be reflected in the database schema by
// running migrations
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
