package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "traceID", TraceIDCtxKey.String())
}

func TestGetTraceIDFromContext(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-1")

	id, ok := GetTraceIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "trace-1", id)
}

func TestGetTraceIDFromContext_Missing(t *testing.T) {
	id, ok := GetTraceIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestGetTraceIDFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDCtxKey, 42)

	_, ok := GetTraceIDFromContext(ctx)
	assert.False(t, ok)
}

func TestGetTraceIDFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("other"), "trace-1")

	_, ok := GetTraceIDFromContext(ctx)
	assert.False(t, ok)
}
