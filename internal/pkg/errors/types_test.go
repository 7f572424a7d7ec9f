package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	defined := map[ErrorType]string{
		Unknown:       "Unknown",
		Internal:      "Internal",
		System:        "System",
		InvalidInput:  "InvalidInput",
		NotFound:      "NotFound",
		Unauthorized:  "Unauthorized",
		Forbidden:     "Forbidden",
		RateLimited:   "RateLimited",
		ParsingFailed: "ParsingFailed",
		Timeout:       "Timeout",
		Unavailable:   "Unavailable",
	}
	for errType, want := range defined {
		assert.Equal(t, want, errType.String())
	}

	assert.Equal(t, "ErrorType(-1)", ErrorType(-1).String())
	assert.Equal(t, "ErrorType(999)", ErrorType(999).String())
}
