package causalproof

import (
	"errors"
	"fmt"
)

// AppError is the construction-error type: caller mistakes that fail a
// call immediately rather than being accumulated (compare with the
// verification error list returned by VerifyProof, which never uses this
// type). Modeled on the teacher's internal/service/errors.go.
type AppError struct {
	Code      string
	Message   string
	Retryable bool
	Cause     error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// NewAppError builds an AppError. retryable marks conditions a caller
// might reasonably retry (e.g. a transient platform failure) as opposed
// to a programming mistake.
func NewAppError(code, message string, retryable bool, cause error) *AppError {
	return &AppError{Code: code, Message: message, Retryable: retryable, Cause: cause}
}

// IsCode reports whether err is an *AppError carrying the given code.
func IsCode(err error, code string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

// AppError codes: the construction errors of spec.md §7, plus unknown
// event, decode-failed, secure-random-unavailable, and internal errors.
const (
	CodeEmptyAgentID        = "EMPTY_AGENT_ID"
	CodeInvalidMerkleIndex  = "INVALID_MERKLE_INDEX"
	CodeInvalidActionType   = "INVALID_ACTION_TYPE"
	CodeAgentMismatch       = "AGENT_MISMATCH"
	CodeUnknownPredecessor  = "UNKNOWN_PREDECESSOR"
	CodeUnknownEvent        = "UNKNOWN_EVENT"
	CodeDecodeFailed        = "DECODE_FAILED"
	CodeSecureRandom        = "SECURE_RANDOM_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

func errEmptyAgentID() error {
	return NewAppError(CodeEmptyAgentID, "agent identifier must not be empty", false, nil)
}

func errInvalidMerkleIndex(i, size int) error {
	return NewAppError(CodeInvalidMerkleIndex, fmt.Sprintf("leaf index %d out of range for tree of size %d", i, size), false, nil)
}

func errInvalidActionType(t ActionType) error {
	return NewAppError(CodeInvalidActionType, fmt.Sprintf("action type %q is not one of the closed set", t), false, nil)
}

func errAgentMismatch(expected, got string) error {
	return NewAppError(CodeAgentMismatch, fmt.Sprintf("agent id mismatch: registry is bound to %q, got %q", expected, got), false, nil)
}

func errUnknownPredecessor(digest string) error {
	return NewAppError(CodeUnknownPredecessor, fmt.Sprintf("predecessor %q is not a known event in this registry", digest), false, nil)
}

func errUnknownEvent(id string) error {
	return NewAppError(CodeUnknownEvent, fmt.Sprintf("no event with causal id %q", id), false, nil)
}

func errDecodeFailed(reason string, cause error) error {
	return NewAppError(CodeDecodeFailed, "decode-failed: "+reason, false, cause)
}

func errSecureRandomUnavailable(cause error) error {
	return NewAppError(CodeSecureRandom, "cryptographically secure random source unavailable", false, cause)
}

func errInternal(msg string, cause error) error {
	return NewAppError(CodeInternal, msg, true, cause)
}
