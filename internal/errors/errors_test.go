package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"methodcost/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"app error", InvalidInput("bad metric"), CodeInvalidInput},
		{"wrapped app error", fmt.Errorf("run: %w", NotFound("analysis")), CodeNotFound},
		{"domain not found", core.NewNotFoundError("project", "p1"), CodeNotFound},
		{"plain error", stderrors.New("boom"), CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetCode(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))

	base := DatabaseError("insert failed", stderrors.New("connection refused"))
	wrapped := Wrap(base, "save analysis")
	assert.Equal(t, CodeDatabaseError, GetCode(wrapped))
	assert.Equal(t, "save analysis: insert failed: connection refused", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))

	notFound := Wrapf(core.ErrAnalysisNotFound, "load %s", "a1")
	assert.Equal(t, CodeNotFound, GetCode(notFound))
	assert.True(t, core.IsNotFoundError(notFound))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeValidationError, stderrors.New("name is required"))
	assert.True(t, HasCode(err, CodeValidationError))

	recoded := WithCode(CodeInvalidInput, ValidationError("x"))
	assert.Equal(t, CodeInvalidInput, GetCode(recoded))
	assert.False(t, HasCode(nil, CodeInvalidInput))
}
