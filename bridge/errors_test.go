package bridge

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomy(t *testing.T) {
	notFound := fmt.Errorf("call: %w", NewNotFound("method", "not_real_method"))
	assert.ErrorIs(t, notFound, ErrNotFound)
	assert.NotErrorIs(t, notFound, ErrDuplicateName)
	assert.Contains(t, notFound.Error(), `method "not_real_method" not found`)

	dup := &DuplicateNameError{Kind: "tool", Name: "sum", First: "Add", Second: "Plus"}
	assert.ErrorIs(t, dup, ErrDuplicateName)

	cause := errors.New("quota exceeded")
	rejection := &RejectionError{Reason: cause}
	assert.ErrorIs(t, rejection, cause)
	assert.EqualValues(t, "remote rejected: quota exceeded", rejection.Error())
	assert.EqualValues(t, "remote rejected: bad", (&RejectionError{Reason: map[string]interface{}{"message": "bad"}}).Error())

	var target *RejectionError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", rejection), &target))
	assert.Equal(t, cause, target.Reason)

	argErr := &ArgumentError{Name: "greet", Reason: "expected 1 argument, got 2"}
	assert.ErrorIs(t, argErr, ErrInvalidArgument)
}
