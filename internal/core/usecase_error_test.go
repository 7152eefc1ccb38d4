package core

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseCaseError_Message(t *testing.T) {
	msg := "A random error message"
	err := NewUseCaseError(msg)

	assert.Equal(t, msg, err.Error())
	assert.Equal(t, msg, err.Message())
	assert.Equal(t, KindUseCaseError, err.Kind())
	assert.Equal(t, "UseCaseError", err.Name())
}

func TestUseCaseError_VariantName(t *testing.T) {
	const KindPseudo Kind = "PseudoError"

	base := NewUseCaseError("error message")
	pseudo := KindPseudo.New("error message 2")

	assert.Equal(t, "UseCaseError", base.Name())
	assert.Equal(t, "PseudoError", pseudo.Name())
	assert.Equal(t, "ValidationError", KindValidation.New("x").Name())
}

func TestUseCaseError_ZeroKindReportsBase(t *testing.T) {
	err := &UseCaseError{message: "m"}
	assert.Equal(t, KindUseCaseError, err.Kind())
}

func TestUseCaseError_Is(t *testing.T) {
	err := KindNotFound.New("user 7 not found")

	assert.True(t, errors.Is(err, KindNotFound.New("")))
	assert.False(t, errors.Is(err, KindValidation.New("")))
	assert.False(t, errors.Is(err, context.Canceled))
}

func TestUseCaseError_Wrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := KindUnavailable.Wrap("dependency down", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "dependency down", err.Error())
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain error", err: errors.New("x"), want: ""},
		{name: "direct", err: KindForbidden.New("no"), want: KindForbidden},
		{name: "wrapped", err: fmt.Errorf("handler: %w", KindConflict.New("dup")), want: KindConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
			if tt.want != "" {
				assert.True(t, IsKind(tt.err, tt.want))
			}
		})
	}
}

func TestAsUseCaseError(t *testing.T) {
	orig := KindValidation.New("title is required")
	got, ok := AsUseCaseError(fmt.Errorf("wrap: %w", orig))

	require.True(t, ok)
	assert.Same(t, orig, got)

	_, ok = AsUseCaseError(errors.New("plain"))
	assert.False(t, ok)
}

func TestUseCaseFunc(t *testing.T) {
	var uc UseCase[string, Result[int]] = UseCaseFunc[string, Result[int]](
		func(_ context.Context, req string) (Result[int], error) {
			if req == "" {
				return Fail[int](KindValidation.New("empty request")), nil
			}
			return Ok(len(req)), nil
		},
	)

	res, err := uc.Execute(context.Background(), "four")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Value())

	res, err = uc.Execute(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, IsKind(res.Err(), KindValidation))
}
