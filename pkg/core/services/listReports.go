package services

import (
	"context"
	"fmt"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/db"
)

// ListReportsStore defines the database operations needed for report listings
type ListReportsStore interface {
	GetReportsByUser(ctx context.Context, username string) ([]model.Report, error)
	GetReports(ctx context.Context, filter db.ReportFilter) ([]model.Report, error)
}

// ListReportsForUser returns every report submitted by the given team lead,
// newest date first
func ListReportsForUser(ctx context.Context, database ListReportsStore, username string) ([]model.Report, error) {
	reports, err := database.GetReportsByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports for %s: %w", username, err)
	}
	return reports, nil
}

// ListAllReports returns reports matching the filter, newest date first
func ListAllReports(ctx context.Context, database ListReportsStore, filter db.ReportFilter) ([]model.Report, error) {
	reports, err := database.GetReports(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return reports, nil
}

// DaySummary aggregates verified reconciliation totals for one calendar date
type DaySummary struct {
	Date           string
	VerifiedCount  int
	IicsTotal      int
	GiaTotal       int
	IicsDifference int // attended minus IICS, summed
	GiaDifference  int // attended minus GIA, summed
}

// VerificationDaySummary aggregates the verified reports of one date into
// the analyst dashboard figures
func VerificationDaySummary(ctx context.Context, database ListReportsStore, date string) (*DaySummary, error) {
	if _, err := parseDate(date); err != nil {
		return nil, err
	}

	reports, err := database.GetReports(ctx, db.ReportFilter{DateFrom: date, DateTo: date, VerifiedOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}

	summary := &DaySummary{Date: date}
	for _, report := range reports {
		summary.VerifiedCount++
		summary.IicsTotal += report.Totals.IicsTotal
		summary.GiaTotal += report.Totals.GiaTotal
		summary.IicsDifference += report.Totals.TotalAttended - report.Totals.IicsTotal
		summary.GiaDifference += report.Totals.TotalAttended - report.Totals.GiaTotal
	}

	return summary, nil
}
