package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/pkg/core/activation"
	"github.com/collectionsdesk/paxcash/pkg/core/arithmetic"
	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

// UpdateReportTeamLeadStore defines the database operations needed for a
// team-lead correction
type UpdateReportTeamLeadStore interface {
	GetReport(ctx context.Context, id string) (*model.Report, error)
	UpdateReport(ctx context.Context, report *model.Report) error
}

// TeamLeadUpdateInput carries the revised counts and remarks for a
// post-submission correction
type TeamLeadUpdateInput struct {
	Counts  validation.CountsPayload
	Remarks string
}

// UpdateReportAsTeamLead applies a correction to a previously submitted
// report. Only the original submitter may call it, and only while the
// activation gate names both that submitter and the report's own date.
// Derived totals are recomputed; the verification status is left untouched.
func UpdateReportAsTeamLead(
	ctx context.Context,
	database UpdateReportTeamLeadStore,
	gate *activation.Gate,
	logger *zap.Logger,
	reportID string,
	input TeamLeadUpdateInput,
	actingUser model.User,
) (*model.Report, error) {
	logger.Debug("Starting updateReportAsTeamLead",
		zap.String("report_id", reportID),
		zap.String("user", actingUser.Username))

	if err := requireRole(actingUser, model.RoleTeamLead); err != nil {
		return nil, err
	}

	report, err := database.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	if report == nil {
		return nil, &NotFoundError{Kind: "report", ID: reportID}
	}

	if report.SubmittedBy != actingUser.Username {
		return nil, &PermissionError{Reason: "reports can only be corrected by their submitter"}
	}

	// The gate must name this exact user and this report's exact date.
	// The coarse single-argument query is for UI affordance only.
	open, err := gate.IsActivatedForDate(ctx, actingUser.Username, report.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to check activation gate: %w", err)
	}
	if !open {
		return nil, &PermissionError{Reason: "no update window is open for this team lead and date - contact a data analyst"}
	}

	counts, errs := validation.ValidateCounts(input.Counts)
	if !errs.Empty() {
		logger.Debug("Correction rejected", zap.Int("field_errors", len(errs)))
		return nil, validationFailed(errs)
	}

	report.Counts = counts
	report.Totals = arithmetic.ComputeTotals(counts)
	report.Remarks = input.Remarks

	if err := database.UpdateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	logger.Info("Report corrected by team lead",
		zap.String("report_id", report.ID),
		zap.Int("total_attended", report.Totals.TotalAttended))

	return report, nil
}
