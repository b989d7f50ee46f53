package constants

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// GeneratedPasswordLength is the length of the password generated for users
// that signed up without one.
const GeneratedPasswordLength = 12

// DefaultOrderBy is the task list ordering used when none is requested.
const DefaultOrderBy = "id"
