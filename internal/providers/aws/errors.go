package aws

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"

	"cloudaudit/internal/audit"
)

type ErrorCategory string

// Error categories for better error classification and handling
const (
	// ErrAuthenticationFailed is returned when the credential is invalid or expired
	ErrAuthenticationFailed ErrorCategory = "authentication_failed"

	// ErrPermissionDenied is returned when AWS API access is denied
	ErrPermissionDenied ErrorCategory = "permission_denied"

	// ErrResourceNotFound is returned when a requested AWS resource doesn't exist
	ErrResourceNotFound ErrorCategory = "resource_not_found"

	// ErrThrottling is returned when AWS API throttles the request
	ErrThrottling ErrorCategory = "request_throttled"

	// ErrConfigurationError is returned when there's an issue with AWS configuration
	ErrConfigurationError ErrorCategory = "configuration_error"

	// ErrNetworkError is returned for network-related errors accessing AWS API
	ErrNetworkError ErrorCategory = "network_error"

	// ErrInvalidInput is returned when invalid input is provided
	ErrInvalidInput ErrorCategory = "invalid_input"

	// ErrInternalError is returned for unexpected internal errors
	ErrInternalError ErrorCategory = "internal_error"
)

// Resource types used in error context
const (
	RDSResourceType = "RDS"
	EC2ResourceType = "EC2"
	S3ResourceType  = "S3"
	STSResourceType = "STS"
)

var (
	authenticationCodes = []string{
		"InvalidClientTokenId", "ExpiredToken", "ExpiredTokenException",
		"UnrecognizedClientException", "SignatureDoesNotMatch", "AuthFailure",
		"InvalidAccessKeyId",
	}
	authorizationCodes = []string{
		"AccessDenied", "AccessDeniedException", "UnauthorizedOperation",
		"AuthorizationError", "AllAccessDisabled",
	}
	notFoundCodes = []string{
		"DBInstanceNotFound", "DBInstanceNotFoundFault", "InvalidVpcID.NotFound",
		"NoSuchBucket", "NotFound",
	}
	throttlingCodes = []string{
		"Throttling", "ThrottlingException", "RequestLimitExceeded",
		"TooManyRequestsException", "SlowDown",
	}
	invalidInputCodes = []string{
		"InvalidParameterValue", "InvalidParameterCombination", "ValidationError",
		"MalformedQueryString", "InvalidBucketName", "InvalidParameter",
	}
)

// Error represents an error that occurred during AWS operations with
// additional context about what went wrong.
type Error struct {
	// Category for programmatic error handling
	Category ErrorCategory

	// ResourceType identifies the AWS resource type (e.g., RDS, S3)
	ResourceType string

	// ResourceID identifies the specific resource ID when applicable
	ResourceID string

	// Message provides human-readable details
	Message string

	// Code is the AWS error code when the service returned one
	Code string

	// Underlying is the wrapped cause of this error
	Underlying error
}

// Error returns a formatted error message
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s (%s)", e.Message, e.Code)
	}
	if e.ResourceID != "" {
		return fmt.Sprintf("%s: %s [resource: %s/%s]", e.Category, msg, e.ResourceType, e.ResourceID)
	}
	if e.ResourceType != "" {
		return fmt.Sprintf("%s: %s [resource type: %s]", e.Category, msg, e.ResourceType)
	}
	return fmt.Sprintf("%s: %s", e.Category, msg)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// Is lets callers match the terminal audit classes with errors.Is.
func (e *Error) Is(target error) bool {
	switch e.Category {
	case ErrAuthenticationFailed:
		return target == audit.ErrAuthentication
	case ErrPermissionDenied:
		return target == audit.ErrAuthorization
	}
	return false
}

// IsTerminal reports whether the error must abort the run rather than a
// single field.
func (e *Error) IsTerminal() bool {
	return e.Category == ErrAuthenticationFailed || e.Category == ErrPermissionDenied
}

// NewAWSError creates a new AWS error with the specified details
func NewAWSError(category ErrorCategory, resourceType, resourceID, message string, underlying error) *Error {
	return &Error{
		Category:     category,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		Message:      message,
		Code:         ErrorCode(underlying),
		Underlying:   underlying,
	}
}

// IsErrorCategory checks if an error belongs to a specific error category
func IsErrorCategory(err error, category ErrorCategory) bool {
	if err == nil {
		return false
	}

	var awsErr *Error
	if errors.As(err, &awsErr) {
		return awsErr.Category == category
	}

	return false
}

// ErrorCode returns the AWS error code carried by err, or "".
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// HasErrorCode reports whether err carries one of the given AWS error codes.
func HasErrorCode(err error, codes ...string) bool {
	code := ErrorCode(err)
	return code != "" && oneOf(code, codes)
}

// ClassifyAWSError classifies an AWS error by its service error code, falling
// back to the message for errors raised before a request is sent.
func ClassifyAWSError(err error, resourceType, resourceID string) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	if code := ErrorCode(err); code != "" {
		switch {
		case oneOf(code, authenticationCodes):
			return NewAWSError(ErrAuthenticationFailed, resourceType, resourceID,
				"The AWS credential is invalid or expired", err)
		case oneOf(code, authorizationCodes):
			return NewAWSError(ErrPermissionDenied, resourceType, resourceID,
				"Access denied", err)
		case oneOf(code, notFoundCodes):
			return NewAWSError(ErrResourceNotFound, resourceType, resourceID,
				"Resource not found", err)
		case oneOf(code, throttlingCodes):
			return NewAWSError(ErrThrottling, resourceType, resourceID,
				"Request throttled", err)
		case oneOf(code, invalidInputCodes):
			return NewAWSError(ErrInvalidInput, resourceType, resourceID,
				"Invalid input", err)
		}
	}

	errMsg := err.Error()

	switch {
	// Fall back to string-based analysis for errors without a service code.
	// Credential resolution failures come first: they often embed IMDS
	// network errors that would otherwise read as network or config problems.
	case contains(errMsg, "failed to retrieve credentials", "failed to refresh cached credentials",
		"no EC2 IMDS role found", "no valid credential", "static credentials are empty"):
		return NewAWSError(ErrAuthenticationFailed, resourceType, resourceID,
			"No usable AWS credential was found", err)

	case contains(errMsg, "no such host", "connection refused", "timeout", "i/o timeout"):
		return NewAWSError(ErrNetworkError, resourceType, resourceID,
			"Network error while accessing AWS API", err)

	case contains(errMsg, "could not find region", "failed to get shared config profile",
		"failed to load shared config"):
		return NewAWSError(ErrConfigurationError, resourceType, resourceID,
			"AWS SDK configuration error", err)

	default:
		return NewAWSError(ErrInternalError, resourceType, resourceID,
			"Internal error occurred", err)
	}
}

func oneOf(code string, codes []string) bool {
	for _, c := range codes {
		if code == c {
			return true
		}
	}
	return false
}

// contains checks if the error message contains any of the provided substrings
func contains(s string, substrings ...string) bool {
	for _, substr := range substrings {
		if strings.Contains(strings.ToLower(s), strings.ToLower(substr)) {
			return true
		}
	}
	return false
}
