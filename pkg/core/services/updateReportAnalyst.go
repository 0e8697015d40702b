package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/pkg/core/arithmetic"
	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

// UpdateReportAnalystStore defines the database operations needed for an
// analyst edit
type UpdateReportAnalystStore interface {
	GetReport(ctx context.Context, id string) (*model.Report, error)
	UpdateReport(ctx context.Context, report *model.Report) error
}

// ReconciliationInput carries analyst-entered IICS/GIA figures
type ReconciliationInput struct {
	IicsInfant int
	IicsAdult  int
	GiaInfant  int
	GiaAdult   int
}

// AnalystEditInput revises either the raw counts or the reconciliation
// figures of a report. Exactly one of the two must be set.
type AnalystEditInput struct {
	Counts         *validation.CountsPayload
	Reconciliation *ReconciliationInput
	Remarks        *string
}

// UpdateReportAsAnalyst edits any report without going through the
// activation gate. Revising raw counts recomputes all derived fields and
// resets the verification status, forcing a fresh verify. Revising
// reconciliation figures re-runs the reconciliation checks against the
// report's attended total and leaves the verification status alone.
func UpdateReportAsAnalyst(
	ctx context.Context,
	database UpdateReportAnalystStore,
	logger *zap.Logger,
	reportID string,
	input AnalystEditInput,
	actingUser model.User,
) (*model.Report, error) {
	logger.Debug("Starting updateReportAsAnalyst",
		zap.String("report_id", reportID),
		zap.String("user", actingUser.Username))

	if err := requireRole(actingUser, model.RoleDataAnalyst); err != nil {
		return nil, err
	}

	if (input.Counts == nil) == (input.Reconciliation == nil) {
		return nil, validationFailed(validation.FieldErrors{
			"input": "Provide either revised counts or revised reconciliation figures",
		})
	}

	report, err := database.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	if report == nil {
		return nil, &NotFoundError{Kind: "report", ID: reportID}
	}

	if input.Counts != nil {
		counts, errs := validation.ValidateCounts(*input.Counts)
		if !errs.Empty() {
			return nil, validationFailed(errs)
		}

		report.Counts = counts
		report.Totals = arithmetic.ComputeTotals(counts)
		if report.Verified {
			// A count change invalidates the prior verification
			report.Verified = false
			report.VerifiedBy = ""
			logger.Info("Verification reset by analyst count edit", zap.String("report_id", report.ID))
		}
	} else {
		rec := *input.Reconciliation
		iicsTotal := rec.IicsInfant + rec.IicsAdult
		giaTotal := rec.GiaInfant + rec.GiaAdult

		errs := validation.ValidateReconciliation(rec.IicsInfant, rec.IicsAdult, iicsTotal, rec.GiaInfant, rec.GiaAdult, giaTotal)
		if !errs.Empty() {
			return nil, validationFailed(errs)
		}
		errs = validation.ValidateAttendedAgainstReconciliation(report.Totals.TotalAttended, iicsTotal, giaTotal)
		if !errs.Empty() {
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
	}

	if input.Remarks != nil {
		report.Remarks = *input.Remarks
	}

	if err := database.UpdateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to update report: %w", err)
	}

	logger.Info("Report edited by analyst", zap.String("report_id", report.ID))

	return report, nil
}
