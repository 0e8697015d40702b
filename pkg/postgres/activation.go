package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/collectionsdesk/paxcash/pkg/core/activation"
	"github.com/collectionsdesk/paxcash/pkg/core/model"
)

// GetActivation retrieves the live edit window. Returns nil when none is open.
func (d *DB) GetActivation(ctx context.Context) (*activation.Activation, error) {
	var current activation.Activation
	var day time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT username, activation_date FROM team_lead_activation
	`).Scan(&current.Username, &day)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query activation: %w", err)
	}
	current.Date = day.Format("2006-01-02")
	return &current, nil
}

// SetActivation replaces the live edit window
func (d *DB) SetActivation(ctx context.Context, a activation.Activation) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO team_lead_activation (singleton, username, activation_date)
		VALUES (TRUE, $1, $2)
		ON CONFLICT (singleton) DO UPDATE
		SET username = EXCLUDED.username, activation_date = EXCLUDED.activation_date
	`, a.Username, a.Date)
	if err != nil {
		return fmt.Errorf("failed to set activation: %w", err)
	}
	return nil
}

// ClearActivation closes the live edit window
func (d *DB) ClearActivation(ctx context.Context) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM team_lead_activation`)
	if err != nil {
		return fmt.Errorf("failed to clear activation: %w", err)
	}
	return nil
}

// InsertActivationRecord appends one granted window to the audit history
func (d *DB) InsertActivationRecord(ctx context.Context, record *model.ActivationRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO activation_history (id, username, activation_date, activated_by, created_at)
		VALUES ($1, $2, $3, $4, $5::timestamptz)
	`, record.ID, record.Username, record.Date, record.ActivatedBy, record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert activation record: %w", err)
	}
	return nil
}

// GetRecentActivations retrieves the newest audit entries, most recent first
func (d *DB) GetRecentActivations(ctx context.Context, limit int) ([]model.ActivationRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, username, activation_date, activated_by, created_at
		FROM activation_history
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activation history: %w", err)
	}
	defer rows.Close()

	var records []model.ActivationRecord
	for rows.Next() {
		var record model.ActivationRecord
		var day, createdAt time.Time
		if err := rows.Scan(&record.ID, &record.Username, &day, &record.ActivatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan activation record: %w", err)
		}
		record.Date = day.Format("2006-01-02")
		record.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating activation history: %w", err)
	}
	return records, nil
}
