package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/internal/config"
	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

// ReferenceStore defines the database operations for the flight and
// supervisor reference lists
type ReferenceStore interface {
	GetFlights(ctx context.Context) ([]string, error)
	AddFlight(ctx context.Context, name string) error
	DeleteFlight(ctx context.Context, name string) error
	GetSupervisors(ctx context.Context) ([]string, error)
	AddSupervisor(ctx context.Context, name string) error
	DeleteSupervisor(ctx context.Context, name string) error
}

// ListReferenceLists returns both admin-maintained name lists for the entry
// form
func ListReferenceLists(ctx context.Context, database ReferenceStore) (*model.ReferenceLists, error) {
	flights, err := database.GetFlights(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch flights: %w", err)
	}
	supervisors, err := database.GetSupervisors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch supervisors: %w", err)
	}
	return &model.ReferenceLists{Flights: flights, Supervisors: supervisors}, nil
}

// AddFlight adds a flight name to the reference list. Admin only; duplicates
// are rejected.
func AddFlight(ctx context.Context, database ReferenceStore, logger *zap.Logger, name string, actingUser model.User) error {
	return addReferenceName(ctx, logger, name, actingUser, "flight", database.GetFlights, database.AddFlight)
}

// AddSupervisor adds a supervisor name to the reference list. Admin only;
// duplicates are rejected.
func AddSupervisor(ctx context.Context, database ReferenceStore, logger *zap.Logger, name string, actingUser model.User) error {
	return addReferenceName(ctx, logger, name, actingUser, "supervisor", database.GetSupervisors, database.AddSupervisor)
}

// DeleteFlight removes a flight name from the reference list. Admin only.
func DeleteFlight(ctx context.Context, database ReferenceStore, logger *zap.Logger, name string, actingUser model.User) error {
	return deleteReferenceName(ctx, logger, name, actingUser, "flight", database.GetFlights, database.DeleteFlight)
}

// DeleteSupervisor removes a supervisor name from the reference list. Admin only.
func DeleteSupervisor(ctx context.Context, database ReferenceStore, logger *zap.Logger, name string, actingUser model.User) error {
	return deleteReferenceName(ctx, logger, name, actingUser, "supervisor", database.GetSupervisors, database.DeleteSupervisor)
}

func addReferenceName(
	ctx context.Context,
	logger *zap.Logger,
	name string,
	actingUser model.User,
	kind string,
	list func(context.Context) ([]string, error),
	add func(context.Context, string) error,
) error {
	if err := requireRole(actingUser, model.RoleAdmin); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return validationFailed(validation.FieldErrors{kind: "Name is required"})
	}

	existing, err := list(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch %s list: %w", kind, err)
	}
	for _, entry := range existing {
		if strings.EqualFold(entry, name) {
			return validationFailed(validation.FieldErrors{kind: fmt.Sprintf("%q already exists", name)})
		}
	}

	if err := add(ctx, name); err != nil {
		return fmt.Errorf("failed to add %s: %w", kind, err)
	}

	logger.Info("Reference name added", zap.String("kind", kind), zap.String("name", name))
	return nil
}

func deleteReferenceName(
	ctx context.Context,
	logger *zap.Logger,
	name string,
	actingUser model.User,
	kind string,
	list func(context.Context) ([]string, error),
	remove func(context.Context, string) error,
) error {
	if err := requireRole(actingUser, model.RoleAdmin); err != nil {
		return err
	}

	existing, err := list(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch %s list: %w", kind, err)
	}

	found := false
	for _, entry := range existing {
		if entry == name {
			found = true
			break
		}
	}
	if !found {
		return &NotFoundError{Kind: kind, ID: name}
	}

	if err := remove(ctx, name); err != nil {
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	logger.Info("Reference name deleted", zap.String("kind", kind), zap.String("name", name))
	return nil
}

// ExpectedFlights resolves the configured flight schedules to the flight
// names expected to operate on the given date. Flights with no schedule are
// always included.
func ExpectedFlights(schedules []config.FlightSchedule, date string) ([]string, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}

	expected := make([]string, 0, len(schedules))
	for i, schedule := range schedules {
		if schedule.RRule == "" {
			expected = append(expected, schedule.Flight)
			continue
		}

		rule, err := rrule.StrToRRule(schedule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid rrule in flightSchedules[%d]: %w", i, err)
		}

		// Anchor the rule just before the queried day and scan one day
		rule.DTStart(day.AddDate(0, 0, -7))
		occurrences := rule.Between(day, day.Add(24*time.Hour-time.Second), true)
		if len(occurrences) > 0 {
			expected = append(expected, schedule.Flight)
		}
	}

	return expected, nil
}
