package apperror

// ErrorCode is the general system-level error category.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeUpstreamFailure  ErrorCode = "UPSTREAM_FAILURE"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// BusinessCode narrows an ErrorCode down to a specific business reason.
type BusinessCode string

const (
	BusinessCodeGeneral             BusinessCode = "GENERAL"
	BusinessCodeNewsNotFound        BusinessCode = "NEWS_NOT_FOUND"
	BusinessCodeCommentNotFound     BusinessCode = "COMMENT_NOT_FOUND"
	BusinessCodeUserNotFound        BusinessCode = "USER_NOT_FOUND"
	BusinessCodeAccessDenied        BusinessCode = "ACCESS_DENIED"
	BusinessCodeAccountInactive     BusinessCode = "ACCOUNT_INACTIVE"
	BusinessCodeInvalidTimePeriod   BusinessCode = "INVALID_TIME_PERIOD"
	BusinessCodeInvalidFormat       BusinessCode = "INVALID_FORMAT"
	BusinessCodeMissingCredential   BusinessCode = "MISSING_CREDENTIAL"
	BusinessCodeIdentityUnavailable BusinessCode = "IDENTITY_UNAVAILABLE"
)
