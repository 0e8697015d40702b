package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

func TestUpdateReportAsAnalyst_CountEditBypassesGate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice"))

	counts := validation.CountsPayload{Paid: "50", Infants: "1"}
	updated, err := UpdateReportAsAnalyst(ctx, store, testLogger(), report.ID,
		AnalystEditInput{Counts: &counts}, dataAnalyst("dana"))
	require.NoError(t, err)

	assert.Equal(t, 50, updated.Counts.Paid)
	assert.Equal(t, 51, updated.Totals.TotalAttended)
}

func TestUpdateReportAsAnalyst_CountEditResetsVerification(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice"))

	_, err := VerifyReport(ctx, store, testLogger(), report.ID,
		ReconciliationInput{IicsInfant: 3, IicsAdult: 105, GiaInfant: 3, GiaAdult: 105},
		dataAnalyst("dana"))
	require.NoError(t, err)

	counts := validation.CountsPayload{Paid: "200"}
	updated, err := UpdateReportAsAnalyst(ctx, store, testLogger(), report.ID,
		AnalystEditInput{Counts: &counts}, dataAnalyst("dana"))
	require.NoError(t, err)

	assert.False(t, updated.Verified)
	assert.Empty(t, updated.VerifiedBy)
}

func TestUpdateReportAsAnalyst_ReconciliationEdit(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice")) // attended=111

	updated, err := UpdateReportAsAnalyst(ctx, store, testLogger(), report.ID,
		AnalystEditInput{Reconciliation: &ReconciliationInput{IicsInfant: 3, IicsAdult: 100, GiaInfant: 3, GiaAdult: 102}},
		dataAnalyst("dana"))
	require.NoError(t, err)

	assert.Equal(t, 103, updated.Totals.IicsTotal)
	assert.Equal(t, 105, updated.Totals.GiaTotal)
	assert.Equal(t, 103-111, updated.Totals.IicsTotalDifference)
	assert.Equal(t, 105-111, updated.Totals.GiaTotalDifference)
	// Reconciliation-only edits never touch verification status
	assert.False(t, updated.Verified)
}

func TestUpdateReportAsAnalyst_ReconciliationAboveAttendedRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice")) // attended=111

	_, err := UpdateReportAsAnalyst(ctx, store, testLogger(), report.ID,
		AnalystEditInput{Reconciliation: &ReconciliationInput{IicsInfant: 3, IicsAdult: 120, GiaInfant: 3, GiaAdult: 100}},
		dataAnalyst("dana"))

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "difference")
}

func TestUpdateReportAsAnalyst_ExactlyOneInputKind(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice"))

	counts := validation.CountsPayload{Paid: "1"}
	rec := ReconciliationInput{}

	_, err := UpdateReportAsAnalyst(ctx, store, testLogger(), report.ID,
		AnalystEditInput{Counts: &counts, Reconciliation: &rec}, dataAnalyst("dana"))
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)

	_, err = UpdateReportAsAnalyst(ctx, store, testLogger(), report.ID,
		AnalystEditInput{}, dataAnalyst("dana"))
	require.ErrorAs(t, err, &valErr)
}

func TestUpdateReportAsAnalyst_RequiresDataAnalyst(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice"))

	counts := validation.CountsPayload{Paid: "1"}
	_, err := UpdateReportAsAnalyst(ctx, store, testLogger(), report.ID,
		AnalystEditInput{Counts: &counts}, cashController("carol"))

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
}

func TestUpdateReportAsAnalyst_UpdatesRemarks(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice"))

	remarks := "recount requested by supervisor"
	counts := validation.CountsPayload{Paid: "10"}
	updated, err := UpdateReportAsAnalyst(ctx, store, testLogger(), report.ID,
		AnalystEditInput{Counts: &counts, Remarks: &remarks}, dataAnalyst("dana"))
	require.NoError(t, err)

	assert.Equal(t, remarks, updated.Remarks)
}
