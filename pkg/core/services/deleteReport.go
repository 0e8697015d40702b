package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
)

// DeleteReportStore defines the database operations needed for report removal
type DeleteReportStore interface {
	GetReport(ctx context.Context, id string) (*model.Report, error)
	DeleteReport(ctx context.Context, id string) error
}

// DeleteReport removes a report unconditionally. Admin only; there is no
// soft delete.
func DeleteReport(
	ctx context.Context,
	database DeleteReportStore,
	logger *zap.Logger,
	reportID string,
	actingUser model.User,
) error {
	if err := requireRole(actingUser, model.RoleAdmin); err != nil {
		return err
	}

	report, err := database.GetReport(ctx, reportID)
	if err != nil {
		return fmt.Errorf("failed to fetch report: %w", err)
	}
	if report == nil {
		return &NotFoundError{Kind: "report", ID: reportID}
	}

	if err := database.DeleteReport(ctx, reportID); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	logger.Info("Report deleted",
		zap.String("report_id", reportID),
		zap.String("deleted_by", actingUser.Username))

	return nil
}
