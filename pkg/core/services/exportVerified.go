package services

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/db"
)

// ExportHeader is the fixed column layout every export format shares.
// Downstream consumers rely on this order.
var ExportHeader = []string{
	"Date", "Ref No", "Supervisor", "Flight Name", "Zone",
	"Paid", "Diplomats", "Infants", "Not Paid", "Paid Card/QR",
	"Refunds", "Deportees", "Transit", "Waivers", "Prepaid Bank",
	"Round Trip", "Late Payment", "Total Attended",
	"IICS Infant", "IICS Adult", "IICS Total",
	"GIA Infant", "GIA Adult", "GIA Total",
	"IICS-Total Difference", "GIA-Total Difference",
	"Status", "Submitted By", "Verified By", "Remarks",
}

// ExportResult holds the rows ready for a CSV/XLSX writer or the sheets
// publisher
type ExportResult struct {
	Header []string
	Rows   [][]string
}

// ExportVerifiedReports gathers verified reports matching the filter and
// flattens them into tabular rows. Available to cash controllers and data
// analysts.
func ExportVerifiedReports(
	ctx context.Context,
	database ListReportsStore,
	logger *zap.Logger,
	filter db.ReportFilter,
	actingUser model.User,
) (*ExportResult, error) {
	if !actingUser.Active {
		return nil, &PermissionError{Reason: fmt.Sprintf("account %s is deactivated", actingUser.Username)}
	}
	if actingUser.Role != model.RoleCashController && actingUser.Role != model.RoleDataAnalyst {
		return nil, &PermissionError{Reason: "export requires the cashController or dataAnalyst role"}
	}

	filter.VerifiedOnly = true
	reports, err := database.GetReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	rows := make([][]string, 0, len(reports))
	for _, report := range reports {
		rows = append(rows, exportRow(report))
	}

	logger.Info("Export rows built",
		zap.Int("count", len(rows)),
		zap.String("requested_by", actingUser.Username))

	return &ExportResult{Header: ExportHeader, Rows: rows}, nil
}

func exportRow(r model.Report) []string {
	status := "Pending"
	if r.Verified {
		status = "Verified"
	}

	return []string{
		r.Date,
		r.RefNo,
		r.Supervisor,
		r.FlightName,
		string(r.Zone),
		strconv.Itoa(r.Counts.Paid),
		strconv.Itoa(r.Counts.Diplomats),
		strconv.Itoa(r.Counts.Infants),
		strconv.Itoa(r.Counts.NotPaid),
		strconv.Itoa(r.Counts.PaidCardQr),
		strconv.Itoa(r.Counts.Refunds),
		strconv.Itoa(r.Counts.Deportees),
		strconv.Itoa(r.Counts.Transit),
		strconv.Itoa(r.Counts.Waivers),
		strconv.Itoa(r.Counts.PrepaidBank),
		strconv.Itoa(r.Counts.RoundTrip),
		strconv.Itoa(r.Counts.LatePayment),
		strconv.Itoa(r.Totals.TotalAttended),
		strconv.Itoa(r.Totals.IicsInfant),
		strconv.Itoa(r.Totals.IicsAdult),
		strconv.Itoa(r.Totals.IicsTotal),
		strconv.Itoa(r.Totals.GiaInfant),
		strconv.Itoa(r.Totals.GiaAdult),
		strconv.Itoa(r.Totals.GiaTotal),
		strconv.Itoa(r.Totals.IicsTotalDifference),
		strconv.Itoa(r.Totals.GiaTotalDifference),
		status,
		r.SubmittedBy,
		r.VerifiedBy,
		r.Remarks,
	}
}
