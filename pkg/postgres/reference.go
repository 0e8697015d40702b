package postgres

import (
	"context"
	"fmt"
)

// GetFlights retrieves the flight reference list in insertion order
func (d *DB) GetFlights(ctx context.Context) ([]string, error) {
	return d.getNames(ctx, "flight")
}

// AddFlight appends a flight name to the reference list
func (d *DB) AddFlight(ctx context.Context, name string) error {
	return d.addName(ctx, "flight", name)
}

// DeleteFlight removes a flight name from the reference list
func (d *DB) DeleteFlight(ctx context.Context, name string) error {
	return d.deleteName(ctx, "flight", name)
}

// GetSupervisors retrieves the supervisor reference list in insertion order
func (d *DB) GetSupervisors(ctx context.Context) ([]string, error) {
	return d.getNames(ctx, "supervisor")
}

// AddSupervisor appends a supervisor name to the reference list
func (d *DB) AddSupervisor(ctx context.Context, name string) error {
	return d.addName(ctx, "supervisor", name)
}

// DeleteSupervisor removes a supervisor name from the reference list
func (d *DB) DeleteSupervisor(ctx context.Context, name string) error {
	return d.deleteName(ctx, "supervisor", name)
}

// table is always one of the two fixed reference tables, never user input
func (d *DB) getNames(ctx context.Context, table string) ([]string, error) {
	rows, err := d.pool.Query(ctx, `SELECT name FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s list: %w", table, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan %s name: %w", table, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s list: %w", table, err)
	}
	return names, nil
}

func (d *DB) addName(ctx context.Context, table, name string) error {
	_, err := d.pool.Exec(ctx, `INSERT INTO `+table+` (name) VALUES ($1)`, name)
	if err != nil {
		return fmt.Errorf("failed to add %s: %w", table, err)
	}
	return nil
}

func (d *DB) deleteName(ctx context.Context, table, name string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM `+table+` WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", table, err)
	}
	return nil
}
