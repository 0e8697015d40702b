package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectionsdesk/paxcash/pkg/db"
)

func TestExportVerifiedReports_OnlyVerifiedRowsIncluded(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	verified := mustSubmit(t, store, teamLead("alice"))
	mustSubmit(t, store, teamLead("bob")) // stays pending

	_, err := VerifyReport(ctx, store, testLogger(), verified.ID,
		ReconciliationInput{IicsInfant: 3, IicsAdult: 105, GiaInfant: 3, GiaAdult: 106},
		dataAnalyst("dana"))
	require.NoError(t, err)

	result, err := ExportVerifiedReports(ctx, store, testLogger(), db.ReportFilter{}, cashController("carol"))
	require.NoError(t, err)

	assert.Equal(t, ExportHeader, result.Header)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	require.Len(t, row, len(ExportHeader))
	assert.Equal(t, verified.Date, row[0])
	assert.Equal(t, verified.RefNo, row[1])
	assert.Equal(t, "100", row[5])  // paid
	assert.Equal(t, "111", row[17]) // total attended
	assert.Equal(t, "108", row[20]) // iics total
	assert.Equal(t, "109", row[23]) // gia total
	assert.Equal(t, "-3", row[24])  // iics difference
	assert.Equal(t, "Verified", row[26])
	assert.Equal(t, "alice", row[27])
	assert.Equal(t, "dana", row[28])
}

func TestExportVerifiedReports_AnalystAllowed(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	_, err := ExportVerifiedReports(ctx, store, testLogger(), db.ReportFilter{}, dataAnalyst("dana"))
	assert.NoError(t, err)
}

func TestExportVerifiedReports_RoleAndActiveChecks(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	var permErr *PermissionError

	_, err := ExportVerifiedReports(ctx, store, testLogger(), db.ReportFilter{}, teamLead("alice"))
	require.ErrorAs(t, err, &permErr)

	inactive := cashController("carol")
	inactive.Active = false
	_, err = ExportVerifiedReports(ctx, store, testLogger(), db.ReportFilter{}, inactive)
	require.ErrorAs(t, err, &permErr)
}

func TestExportVerifiedReports_FilterIsForcedToVerified(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	mustSubmit(t, store, teamLead("alice")) // pending only

	// Caller cannot opt out of the verified-only constraint
	result, err := ExportVerifiedReports(ctx, store, testLogger(), db.ReportFilter{VerifiedOnly: false}, cashController("carol"))
	require.NoError(t, err)
	assert.Empty(t, result.Rows)
}
