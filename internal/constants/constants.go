package constants

const (
	// ContextKeyUserID is the gin context key holding the authenticated user ID.
	ContextKeyUserID = "user_id"

	MinPasswordLength = 8
	MaxPasswordLength = 128

	// MinNameLength applies to project names and task titles after trimming.
	MinNameLength = 2
	MaxNameLength = 255

	MaxDescriptionLength = 2000
)
