package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"docvault-api/config"
)

func TestNew_Disabled(t *testing.T) {
	p, err := New(context.Background(), zap.NewNop(), "docvaultapi", config.Tracing{})
	require.NoError(t, err)

	_, span := p.Tracer().Start(context.Background(), "noop")
	defer span.End()

	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, p.Shutdown(context.Background()))
}
