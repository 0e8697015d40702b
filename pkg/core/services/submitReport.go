package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/pkg/core/arithmetic"
	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

// SubmitReportStore defines the database operations needed for submitting a report
type SubmitReportStore interface {
	InsertReport(ctx context.Context, report *model.Report) error
}

// SubmitReport validates a team lead's raw counts, derives every total, and
// stores a new pending report. The acting user becomes the immutable
// submitter. A blank refNo is filled with a generated one before validation.
func SubmitReport(
	ctx context.Context,
	database SubmitReportStore,
	logger *zap.Logger,
	payload validation.ReportPayload,
	actingUser model.User,
) (*model.Report, error) {
	logger.Debug("Starting submitReport",
		zap.String("user", actingUser.Username),
		zap.String("date", payload.Date),
		zap.String("flight", payload.Flight))

	if err := requireRole(actingUser, model.RoleTeamLead); err != nil {
		return nil, err
	}

	if strings.TrimSpace(payload.RefNo) == "" {
		payload.RefNo = generateRefNo(time.Now())
	}

	counts, errs := validation.ValidateReport(payload)
	if !errs.Empty() {
		logger.Debug("Report payload rejected", zap.Int("field_errors", len(errs)))
		return nil, validationFailed(errs)
	}

	date, err := parseDate(payload.Date)
	if err != nil {
		return nil, validationFailed(validation.FieldErrors{"date": "Date must be in YYYY-MM-DD format"})
	}

	if !model.Zone(payload.Zone).IsValid() {
		return nil, validationFailed(validation.FieldErrors{"zone": "Zone must be arrival or departure"})
	}

	report := &model.Report{
		ID:          uuid.New().String(),
		Date:        date.Format(dateLayout),
		RefNo:       strings.TrimSpace(payload.RefNo),
		Supervisor:  strings.TrimSpace(payload.Supervisor),
		FlightName:  strings.TrimSpace(payload.Flight),
		Zone:        model.Zone(payload.Zone),
		Counts:      counts,
		Totals:      arithmetic.ComputeTotals(counts),
		SubmittedBy: actingUser.Username,
	}

	if err := database.InsertReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}

	logger.Info("Report submitted",
		zap.String("report_id", report.ID),
		zap.String("ref_no", report.RefNo),
		zap.Int("total_attended", report.Totals.TotalAttended))

	return report, nil
}
