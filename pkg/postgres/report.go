package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/db"
)

const reportColumns = `
	id, report_date, ref_no, supervisor, flight_name, zone,
	paid, diplomats, infants, not_paid, paid_card_qr, refunds,
	deportees, transit, waivers, prepaid_bank, round_trip, late_payment,
	total_attended, iics_infant, iics_adult, iics_total,
	gia_infant, gia_adult, gia_total, iics_total_difference, gia_total_difference,
	verified, verified_by, remarks, submitted_by`

func scanReport(row pgx.Row) (*model.Report, error) {
	var report model.Report
	var day time.Time
	err := row.Scan(
		&report.ID, &day, &report.RefNo, &report.Supervisor, &report.FlightName, &report.Zone,
		&report.Counts.Paid, &report.Counts.Diplomats, &report.Counts.Infants,
		&report.Counts.NotPaid, &report.Counts.PaidCardQr, &report.Counts.Refunds,
		&report.Counts.Deportees, &report.Counts.Transit, &report.Counts.Waivers,
		&report.Counts.PrepaidBank, &report.Counts.RoundTrip, &report.Counts.LatePayment,
		&report.Totals.TotalAttended, &report.Totals.IicsInfant, &report.Totals.IicsAdult,
		&report.Totals.IicsTotal, &report.Totals.GiaInfant, &report.Totals.GiaAdult,
		&report.Totals.GiaTotal, &report.Totals.IicsTotalDifference, &report.Totals.GiaTotalDifference,
		&report.Verified, &report.VerifiedBy, &report.Remarks, &report.SubmittedBy,
	)
	if err != nil {
		return nil, err
	}
	report.Date = day.Format("2006-01-02")
	return &report, nil
}

func reportArgs(report *model.Report) []any {
	return []any{
		report.ID, report.Date, report.RefNo, report.Supervisor, report.FlightName, report.Zone,
		report.Counts.Paid, report.Counts.Diplomats, report.Counts.Infants,
		report.Counts.NotPaid, report.Counts.PaidCardQr, report.Counts.Refunds,
		report.Counts.Deportees, report.Counts.Transit, report.Counts.Waivers,
		report.Counts.PrepaidBank, report.Counts.RoundTrip, report.Counts.LatePayment,
		report.Totals.TotalAttended, report.Totals.IicsInfant, report.Totals.IicsAdult,
		report.Totals.IicsTotal, report.Totals.GiaInfant, report.Totals.GiaAdult,
		report.Totals.GiaTotal, report.Totals.IicsTotalDifference, report.Totals.GiaTotalDifference,
		report.Verified, report.VerifiedBy, report.Remarks, report.SubmittedBy,
	}
}

// InsertReport stores a new report
func (d *DB) InsertReport(ctx context.Context, report *model.Report) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO report (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31)
	`, reportArgs(report)...)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// GetReport retrieves one report by ID. Returns nil when no report exists.
func (d *DB) GetReport(ctx context.Context, id string) (*model.Report, error) {
	row := d.pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM report WHERE id = $1`, id)
	report, err := scanReport(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	return report, nil
}

// UpdateReport overwrites every mutable column of an existing report
func (d *DB) UpdateReport(ctx context.Context, report *model.Report) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE report SET
			report_date = $2, ref_no = $3, supervisor = $4, flight_name = $5, zone = $6,
			paid = $7, diplomats = $8, infants = $9, not_paid = $10, paid_card_qr = $11,
			refunds = $12, deportees = $13, transit = $14, waivers = $15,
			prepaid_bank = $16, round_trip = $17, late_payment = $18,
			total_attended = $19, iics_infant = $20, iics_adult = $21, iics_total = $22,
			gia_infant = $23, gia_adult = $24, gia_total = $25,
			iics_total_difference = $26, gia_total_difference = $27,
			verified = $28, verified_by = $29, remarks = $30, submitted_by = $31
		WHERE id = $1
	`, reportArgs(report)...)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("report %s not found", report.ID)
	}
	return nil
}

// DeleteReport removes a report and, via cascade, its comments
func (d *DB) DeleteReport(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM report WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

// GetReportsByUser retrieves every report a user submitted, newest date first
func (d *DB) GetReportsByUser(ctx context.Context, username string) ([]model.Report, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+reportColumns+` FROM report
		WHERE submitted_by = $1
		ORDER BY report_date DESC, ref_no
	`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

// GetReports retrieves reports matching the filter, newest date first
func (d *DB) GetReports(ctx context.Context, filter db.ReportFilter) ([]model.Report, error) {
	var conditions []string
	var args []any

	addCondition := func(condition string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(condition, len(args)))
	}

	if filter.Supervisor != "" {
		addCondition("supervisor ILIKE '%%' || $%d || '%%'", filter.Supervisor)
	}
	if filter.Flight != "" {
		addCondition("flight_name ILIKE '%%' || $%d || '%%'", filter.Flight)
	}
	if filter.DateFrom != "" {
		addCondition("report_date >= $%d", filter.DateFrom)
	}
	if filter.DateTo != "" {
		addCondition("report_date <= $%d", filter.DateTo)
	}
	if filter.VerifiedOnly {
		conditions = append(conditions, "verified")
	}

	query := `SELECT ` + reportColumns + ` FROM report`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY report_date DESC, ref_no`

	rows, err := d.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	return collectReports(rows)
}

func collectReports(rows pgx.Rows) ([]model.Report, error) {
	var reports []model.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return reports, nil
}
