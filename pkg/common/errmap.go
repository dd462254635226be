package common

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// CodedError is a provider error that carries a stable code (e.g.
// "auth/wrong-password") alongside the raw message. The code, not the
// message, drives the user-facing mapping.
type CodedError struct {
	Code    string
	Message string
}

func (e *CodedError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

func NewCodedError(code, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

const (
	MsgUnexpected  = "An unexpected error occurred. Please try again."
	MsgGeneric     = "Something went wrong. Please try again."
	MsgGenericAuth = "Authentication failed. Please try again."
	MsgNetwork     = "Network error. Please check your internet connection."
	MsgTimeout     = "Operation timed out. Please try again."
)

var authErrors = map[string]string{
	"auth/email-already-in-use":      "This email is already registered. Please sign in instead.",
	"auth/invalid-email":             "Please enter a valid email address.",
	"auth/operation-not-allowed":     "This operation is not allowed. Please contact support.",
	"auth/weak-password":             "Password is too weak. Please use at least 6 characters.",
	"auth/user-disabled":             "This account has been disabled. Please contact support.",
	"auth/user-not-found":            "No account found with this email. Please check your email or sign up.",
	"auth/wrong-password":            "Incorrect password. Please try again.",
	"auth/invalid-credential":        "Invalid email or password. Please check and try again.",
	"auth/too-many-requests":         "Too many failed attempts. Please try again later.",
	"auth/network-request-failed":    "Network error. Please check your internet connection.",
	"auth/requires-recent-login":     "Please sign in again to continue.",
	"auth/missing-email":             "Please enter your email address.",
}

// Store errors are matched by substring against both the code and the raw
// message, in table order, since the store does not always surface a clean
// code on wrapped errors.
var storeErrors = []struct {
	code    string
	message string
}{
	{"permission-denied", "You don't have permission to perform this action."},
	{"not-found", "The requested resource was not found."},
	{"already-exists", "This resource already exists."},
	{"resource-exhausted", "Too many requests. Please try again later."},
	{"failed-precondition", "Operation cannot be performed. Please try again."},
	{"aborted", "Operation was aborted. Please try again."},
	{"out-of-range", "Invalid value provided."},
	{"unimplemented", "This feature is not available yet."},
	{"internal", "An internal error occurred. Please try again."},
	{"unavailable", "Service temporarily unavailable. Please try again."},
	{"data-loss", "Data loss detected. Please contact support."},
	{"unauthenticated", "Please sign in to continue."},
	{"deadline-exceeded", "Operation timed out. Please try again."},
	{"cancelled", "Operation was cancelled."},
}

// storeCodeNames translates canonical store codes into the dashed names used
// by the mapping table.
var storeCodeNames = map[codes.Code]string{
	codes.Canceled:           "cancelled",
	codes.DeadlineExceeded:   "deadline-exceeded",
	codes.NotFound:           "not-found",
	codes.AlreadyExists:      "already-exists",
	codes.PermissionDenied:   "permission-denied",
	codes.ResourceExhausted:  "resource-exhausted",
	codes.FailedPrecondition: "failed-precondition",
	codes.Aborted:            "aborted",
	codes.OutOfRange:         "out-of-range",
	codes.Unimplemented:      "unimplemented",
	codes.Internal:           "internal",
	codes.Unavailable:        "unavailable",
	codes.DataLoss:           "data-loss",
	codes.Unauthenticated:    "unauthenticated",
}

// FriendlyMessage maps any provider error to a fixed user-facing string.
// Unmapped auth codes fall back to a generic authentication message, anything
// else to a generic message; no raw error text ever reaches the user.
func FriendlyMessage(err error) string {
	if err == nil {
		return MsgUnexpected
	}

	var code, message string
	var coded *CodedError
	if errors.As(err, &coded) {
		code, message = coded.Code, coded.Message
	} else if s, ok := status.FromError(err); ok {
		code, message = storeCodeNames[s.Code()], s.Message()
	} else {
		message = err.Error()
	}

	if strings.HasPrefix(code, "auth/") {
		if msg, ok := authErrors[code]; ok {
			return msg
		}
		return MsgGenericAuth
	}

	for _, entry := range storeErrors {
		if (code != "" && strings.Contains(code, entry.code)) || strings.Contains(message, entry.code) {
			return entry.message
		}
	}

	lower := strings.ToLower(message)
	if strings.Contains(lower, "network") {
		return MsgNetwork
	}
	if strings.Contains(lower, "timeout") {
		return MsgTimeout
	}

	return MsgGeneric
}

// HandleError logs the raw error for debugging and returns the user-facing
// message for display.
func HandleError(err error, context string) string {
	GetLogger().Warn("provider error",
		zap.String("context", context),
		zap.Error(err),
	)
	return FriendlyMessage(err)
}
