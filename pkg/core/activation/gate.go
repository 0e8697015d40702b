package activation

import (
	"context"
	"fmt"
)

// Activation is the stored (team lead, date) pair
type Activation struct {
	Username string
	Date     string // Date format (2006-01-02)
}

// Store defines the persistence operations for the activation singleton
type Store interface {
	GetActivation(ctx context.Context) (*Activation, error)
	SetActivation(ctx context.Context, activation Activation) error
	ClearActivation(ctx context.Context) error
}

// Gate controls the single post-submission edit window. At most one
// (team lead, date) pair is open at a time; activating a new pair replaces
// the previous one without conflict detection.
type Gate struct {
	store Store
}

// NewGate creates a gate backed by the given store
func NewGate(store Store) *Gate {
	return &Gate{store: store}
}

// Activate opens the edit window for the given team lead and date,
// replacing any existing window
func (g *Gate) Activate(ctx context.Context, username, date string) error {
	if err := g.store.SetActivation(ctx, Activation{Username: username, Date: date}); err != nil {
		return fmt.Errorf("failed to set activation: %w", err)
	}
	return nil
}

// Clear closes the edit window entirely
func (g *Gate) Clear(ctx context.Context) error {
	if err := g.store.ClearActivation(ctx); err != nil {
		return fmt.Errorf("failed to clear activation: %w", err)
	}
	return nil
}

// Current returns the open window, or nil when none is open
func (g *Gate) Current(ctx context.Context) (*Activation, error) {
	activation, err := g.store.GetActivation(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get activation: %w", err)
	}
	return activation, nil
}

// IsActivated reports whether the given team lead holds the open window for
// any date. This coarse check drives UI affordances only; permission checks
// must use IsActivatedForDate.
func (g *Gate) IsActivated(ctx context.Context, username string) (bool, error) {
	activation, err := g.Current(ctx)
	if err != nil {
		return false, err
	}
	return activation != nil && activation.Username == username, nil
}

// IsActivatedForDate reports whether the open window names exactly this
// team lead and this date. This is the check edit permissions hang on.
func (g *Gate) IsActivatedForDate(ctx context.Context, username, date string) (bool, error) {
	activation, err := g.Current(ctx)
	if err != nil {
		return false, err
	}
	return activation != nil && activation.Username == username && activation.Date == date, nil
}
