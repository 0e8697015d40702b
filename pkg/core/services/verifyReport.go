package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

// VerifyReportStore defines the database operations needed for verification
type VerifyReportStore interface {
	GetReport(ctx context.Context, id string) (*model.Report, error)
	UpdateReport(ctx context.Context, report *model.Report) error
}

// VerifyReport reconciles a pending report against the analyst's IICS/GIA
// figures and marks it verified. Totals are recomputed from the infant and
// adult splits, never trusted from the caller. The attended total must be at
// least each reconciliation total or the whole verification is rejected.
func VerifyReport(
	ctx context.Context,
	database VerifyReportStore,
	logger *zap.Logger,
	reportID string,
	rec ReconciliationInput,
	actingUser model.User,
) (*model.Report, error) {
	logger.Debug("Starting verifyReport",
		zap.String("report_id", reportID),
		zap.String("user", actingUser.Username))

	if err := requireRole(actingUser, model.RoleDataAnalyst); err != nil {
		return nil, err
	}

	report, err := database.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	if report == nil {
		return nil, &NotFoundError{Kind: "report", ID: reportID}
	}

	if report.Verified {
		return nil, validationFailed(validation.FieldErrors{"report": "Report is already verified"})
	}

	iicsTotal := rec.IicsInfant + rec.IicsAdult
	giaTotal := rec.GiaInfant + rec.GiaAdult

	errs := validation.ValidateReconciliation(rec.IicsInfant, rec.IicsAdult, iicsTotal, rec.GiaInfant, rec.GiaAdult, giaTotal)
	if !errs.Empty() {
		return nil, validationFailed(errs)
	}

	errs = validation.ValidateAttendedAgainstReconciliation(report.Totals.TotalAttended, iicsTotal, giaTotal)
	if !errs.Empty() {
		logger.Debug("Verification rejected by attended gate",
			zap.Int("total_attended", report.Totals.TotalAttended),
			zap.Int("iics_total", iicsTotal),
			zap.Int("gia_total", giaTotal))
		return nil, validationFailed(errs)
	}

	report.Totals.IicsInfant = rec.IicsInfant
	report.Totals.IicsAdult = rec.IicsAdult
	report.Totals.IicsTotal = iicsTotal
	report.Totals.GiaInfant = rec.GiaInfant
	report.Totals.GiaAdult = rec.GiaAdult
	report.Totals.GiaTotal = giaTotal
	report.Totals.IicsTotalDifference = iicsTotal - report.Totals.TotalAttended
	report.Totals.GiaTotalDifference = giaTotal - report.Totals.TotalAttended
	report.Verified = true
	report.VerifiedBy = actingUser.Username

	if err := database.UpdateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	logger.Info("Report verified",
		zap.String("report_id", report.ID),
		zap.String("verified_by", actingUser.Username),
		zap.Int("iics_difference", report.Totals.IicsTotalDifference),
		zap.Int("gia_difference", report.Totals.GiaTotalDifference))

	return report, nil
}
