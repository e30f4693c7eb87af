package errs_test

import (
	"errors"
	"testing"

	"planboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})
}

func TestObjectStillReferencedError(t *testing.T) {
	t.Run("NewObjectStillReferencedError", func(t *testing.T) {
		err := errs.NewObjectStillReferencedError("workCentre", "123")

		assert.Equal(t, "workCentre", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object is still referenced: 123", err.Error())
		assert.Equal(t, errs.ErrObjectStillReferenced, err.Unwrap())
	})

	t.Run("NewObjectStillReferencedErrorWithCause", func(t *testing.T) {
		cause := errors.New("violates foreign key constraint")
		err := errs.NewObjectStillReferencedErrorWithCause("workCentre", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object is still referenced: param is: workCentre, ID is: 123 (cause: violates foreign key constraint)",
			err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("capacity")

		assert.Equal(t, "capacity", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: capacity", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("number", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: number (cause: invalid format)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("position", 12, 0, 9)

		assert.Equal(t, "position", err.ParamName)
		assert.Equal(t, 12, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 9, err.Max)
		assert.Equal(t, "value is invalid: 12 is position, min value is 0, max value is 9", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitizes newlines in string values", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("actorId")

		assert.Equal(t, "actorId", err.ParamName)
		assert.Equal(t, "value is required: actorId", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing field")
		err := errs.NewValueIsRequiredErrorWithCause("actorId", cause)

		assert.Equal(t, "value is required: actorId (cause: missing field)", err.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
		require.ErrorIs(t, errs.NewObjectStillReferencedError("workCentre", "123"), errs.ErrObjectStillReferenced)
		require.ErrorIs(t, errs.NewValueIsInvalidError("capacity"), errs.ErrValueIsInvalid)
		require.ErrorIs(t, errs.NewValueIsOutOfRangeError("position", 12, 0, 9), errs.ErrValueIsOutOfRange)
		require.ErrorIs(t, errs.NewValueIsRequiredError("actorId"), errs.ErrValueIsRequired)
	})
}
