package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/feral-file/ff-catalog/internal/domain"
)

// callerErrors are failures caused by the request itself. Everything else is
// a collaborator failure.
var callerErrors = []error{
	domain.ErrValidation,
	domain.ErrUnauthorized,
	domain.ErrInvalidSignature,
	domain.ErrNotFound,
}

// IsCallerError reports whether err was caused by the caller's input or credentials
func IsCallerError(err error) bool {
	for _, target := range callerErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Message renders err for the response envelope of op
func Message(op string, err error) string {
	if IsCallerError(err) {
		return "Validation Error: " + detail(err)
	}
	return fmt.Sprintf("Error occured during %s: %s", op, err.Error())
}

// detail strips the sentinel text so only the caller-facing part remains
func detail(err error) string {
	msg := err.Error()
	for _, target := range callerErrors {
		if !errors.Is(err, target) {
			continue
		}
		prefix := target.Error() + ": "
		if i := strings.Index(msg, prefix); i >= 0 {
			return msg[:i] + msg[i+len(prefix):]
		}
	}
	return msg
}
