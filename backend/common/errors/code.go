package errors

// Generic error codes.
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrInvalidParam   = "ERR_INVALID_PARAM"
)

// User and auth error codes.
const (
	ErrEmptyID            = "ERR_EMPTY_ID"
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrEmptyCredentials   = "ERR_EMPTY_CREDENTIALS"
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrEmailTaken         = "ERR_EMAIL_TAKEN"
	ErrNotLoggedIn        = "ERR_NOT_LOGGED_IN"
)

// Resource catalog error codes.
const (
	ErrResourceNotFound   = "ERR_RESOURCE_NOT_FOUND"
	ErrForbidden          = "ERR_FORBIDDEN"
	ErrNotOwner           = "ERR_NOT_OWNER"
	ErrFileMissing        = "ERR_FILE_MISSING"
	ErrFileTypeNotAllowed = "ERR_FILE_TYPE_NOT_ALLOWED"
	ErrFileTooLarge       = "ERR_FILE_TOO_LARGE"
)

// Review and bookmark error codes.
const (
	ErrInvalidRating = "ERR_INVALID_RATING"
)
