package activation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	activation *Activation
}

func (m *memoryStore) GetActivation(ctx context.Context) (*Activation, error) {
	if m.activation == nil {
		return nil, nil
	}
	copied := *m.activation
	return &copied, nil
}

func (m *memoryStore) SetActivation(ctx context.Context, activation Activation) error {
	m.activation = &activation
	return nil
}

func (m *memoryStore) ClearActivation(ctx context.Context) error {
	m.activation = nil
	return nil
}

func TestGate_ActivateAndQuery(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(&memoryStore{})

	require.NoError(t, gate.Activate(ctx, "alice", "2024-01-10"))

	open, err := gate.IsActivated(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, open)

	open, err = gate.IsActivatedForDate(ctx, "alice", "2024-01-10")
	require.NoError(t, err)
	assert.True(t, open)

	open, err = gate.IsActivatedForDate(ctx, "alice", "2024-01-11")
	require.NoError(t, err)
	assert.False(t, open)

	open, err = gate.IsActivated(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, open)
}

func TestGate_SecondActivationReplacesFirst(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(&memoryStore{})

	require.NoError(t, gate.Activate(ctx, "alice", "2024-01-10"))
	require.NoError(t, gate.Activate(ctx, "bob", "2024-01-11"))

	open, err := gate.IsActivatedForDate(ctx, "alice", "2024-01-10")
	require.NoError(t, err)
	assert.False(t, open)

	open, err = gate.IsActivatedForDate(ctx, "bob", "2024-01-11")
	require.NoError(t, err)
	assert.True(t, open)
}

func TestGate_Clear(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(&memoryStore{})

	require.NoError(t, gate.Activate(ctx, "alice", "2024-01-10"))
	require.NoError(t, gate.Clear(ctx))

	current, err := gate.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	open, err := gate.IsActivated(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, open)
}

func TestGate_EmptyStore(t *testing.T) {
	ctx := context.Background()
	gate := NewGate(&memoryStore{})

	open, err := gate.IsActivatedForDate(ctx, "alice", "2024-01-10")
	require.NoError(t, err)
	assert.False(t, open)
}
