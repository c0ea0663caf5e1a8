package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDisabled(t *testing.T) {
	p, err := Init(context.Background(), &Config{ServiceName: "refpin", Enabled: false})
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())
	assert.Equal(t, "refpin", p.ServiceName())
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInitEnabled(t *testing.T) {
	p, err := Init(context.Background(), &Config{ServiceName: "refpin", Enabled: true})
	require.NoError(t, err)
	assert.True(t, p.IsEnabled())
	require.NotNil(t, p.Meter)

	m, err := NewOtelCustomMetrics(p.Meter)
	require.NoError(t, err)
	m.RecordToolCall(context.Background(), "search_pinterest", ToolCallOutcomeSuccess, 5*time.Millisecond)
	m.RecordToolCall(context.Background(), "search_pinterest", ToolCallOutcomeError, time.Millisecond)

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestNoopCustomMetrics(t *testing.T) {
	m := NewNoopCustomMetrics()
	// must be safe to call without any providers configured
	m.RecordToolCall(context.Background(), "search_pinterest", ToolCallOutcomeSuccess, time.Second)
}
