package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

func submissionPayload() validation.ReportPayload {
	return validation.ReportPayload{
		Date:       "2024-01-10",
		RefNo:      "CC-20240110-0007",
		Supervisor: "J. Okello",
		Flight:     "KQ412",
		Zone:       "arrival",
		CountsPayload: validation.CountsPayload{
			Paid:       "100",
			Diplomats:  "5",
			Infants:    "3",
			NotPaid:    "2",
			PaidCardQr: "10",
			Refunds:    "8",
			Transit:    "1",
		},
	}
}

func TestSubmitReport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	report, err := SubmitReport(ctx, store, testLogger(), submissionPayload(), teamLead("alice"))
	require.NoError(t, err)

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "alice", report.SubmittedBy)
	assert.False(t, report.Verified)
	assert.Equal(t, 111, report.Totals.TotalAttended)
	assert.Equal(t, 119, report.Totals.IicsTotal)
	assert.Equal(t, 111, report.Totals.GiaTotal)

	listed, err := ListReportsForUser(ctx, store, "alice")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, report.ID, listed[0].ID)
	assert.Equal(t, report.Counts, listed[0].Counts)
	assert.Equal(t, report.Totals, listed[0].Totals)
}

func TestSubmitReport_RequiresTeamLead(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	_, err := SubmitReport(ctx, store, testLogger(), submissionPayload(), dataAnalyst("dana"))

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
	assert.Empty(t, store.reports)
}

func TestSubmitReport_RejectsDeactivatedTeamLead(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	user := teamLead("alice")
	user.Active = false

	_, err := SubmitReport(ctx, store, testLogger(), submissionPayload(), user)

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
}

func TestSubmitReport_ValidationFailureCreatesNothing(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	payload := submissionPayload()
	payload.Supervisor = ""
	payload.Paid = "-1"

	_, err := SubmitReport(ctx, store, testLogger(), payload, teamLead("alice"))

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "supervisor")
	assert.Contains(t, valErr.Fields, "paid")
	assert.Empty(t, store.reports)
}

func TestSubmitReport_GeneratesRefNoWhenBlank(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	payload := submissionPayload()
	payload.RefNo = "  "

	report, err := SubmitReport(ctx, store, testLogger(), payload, teamLead("alice"))
	require.NoError(t, err)

	assert.Regexp(t, `^CC-\d{8}-\d{4}$`, report.RefNo)
}

func TestSubmitReport_RejectsBadZone(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	payload := submissionPayload()
	payload.Zone = "landside"

	_, err := SubmitReport(ctx, store, testLogger(), payload, teamLead("alice"))

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "zone")
}

func TestSubmitReport_RejectsBadDate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	payload := submissionPayload()
	payload.Date = "10/01/2024"

	_, err := SubmitReport(ctx, store, testLogger(), payload, teamLead("alice"))

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "date")
}

// mustSubmit is shared across lifecycle tests
func mustSubmit(t *testing.T, store *fakeStore, user model.User) *model.Report {
	t.Helper()
	report, err := SubmitReport(context.Background(), store, testLogger(), submissionPayload(), user)
	if err != nil {
		t.Fatal(err)
	}
	return report
}

func TestSubmitReport_ErrorTypesAreDistinct(t *testing.T) {
	var valErr *ValidationError
	var permErr *PermissionError

	err := error(&ValidationError{Fields: validation.FieldErrors{"x": "y"}})
	assert.True(t, errors.As(err, &valErr))
	assert.False(t, errors.As(err, &permErr))
}
