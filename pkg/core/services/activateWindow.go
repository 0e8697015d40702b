package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/pkg/core/activation"
	"github.com/collectionsdesk/paxcash/pkg/core/model"
)

// ActivateWindowStore defines the database operations needed for granting an
// edit window
type ActivateWindowStore interface {
	GetUser(ctx context.Context, username string) (*model.User, error)
	InsertActivationRecord(ctx context.Context, record *model.ActivationRecord) error
	GetRecentActivations(ctx context.Context, limit int) ([]model.ActivationRecord, error)
}

// ActivateTeamLeadWindow opens the single edit window for the named team
// lead and date, replacing any window currently open. The grant is recorded
// in the activation history for auditing.
func ActivateTeamLeadWindow(
	ctx context.Context,
	gate *activation.Gate,
	database ActivateWindowStore,
	logger *zap.Logger,
	teamLeadUsername string,
	date string,
	actingUser model.User,
) error {
	logger.Debug("Starting activateTeamLeadWindow",
		zap.String("team_lead", teamLeadUsername),
		zap.String("date", date),
		zap.String("user", actingUser.Username))

	if err := requireRole(actingUser, model.RoleDataAnalyst); err != nil {
		return err
	}

	if _, err := parseDate(date); err != nil {
		return err
	}

	teamLead, err := database.GetUser(ctx, teamLeadUsername)
	if err != nil {
		return fmt.Errorf("failed to fetch user: %w", err)
	}
	if teamLead == nil {
		return &NotFoundError{Kind: "user", ID: teamLeadUsername}
	}
	if teamLead.Role != model.RoleTeamLead || !teamLead.Active {
		return &PermissionError{Reason: "edit windows can only be granted to active team leads"}
	}

	if err := gate.Activate(ctx, teamLeadUsername, date); err != nil {
		return err
	}

	record := &model.ActivationRecord{
		ID:          uuid.New().String(),
		Username:    teamLeadUsername,
		Date:        date,
		ActivatedBy: actingUser.Username,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := database.InsertActivationRecord(ctx, record); err != nil {
		return fmt.Errorf("failed to record activation: %w", err)
	}

	logger.Info("Edit window activated",
		zap.String("team_lead", teamLeadUsername),
		zap.String("date", date),
		zap.String("activated_by", actingUser.Username))

	return nil
}

// ClearTeamLeadWindow closes whatever edit window is currently open
func ClearTeamLeadWindow(
	ctx context.Context,
	gate *activation.Gate,
	logger *zap.Logger,
	actingUser model.User,
) error {
	if err := requireRole(actingUser, model.RoleDataAnalyst); err != nil {
		return err
	}

	if err := gate.Clear(ctx); err != nil {
		return err
	}

	logger.Info("Edit window cleared", zap.String("cleared_by", actingUser.Username))
	return nil
}

// IsTeamLeadWindowOpen answers the two-mode gate query: with a date it is
// the exact permission check, without one it only says whether the team lead
// holds any window at all.
func IsTeamLeadWindowOpen(ctx context.Context, gate *activation.Gate, username, date string) (bool, error) {
	if date == "" {
		return gate.IsActivated(ctx, username)
	}
	return gate.IsActivatedForDate(ctx, username, date)
}

// RecentActivations lists the latest granted edit windows, newest first
func RecentActivations(ctx context.Context, database ActivateWindowStore, limit int) ([]model.ActivationRecord, error) {
	records, err := database.GetRecentActivations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activations: %w", err)
	}
	return records, nil
}
