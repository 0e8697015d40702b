package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectionsdesk/paxcash/internal/config"
)

func TestReferenceLists_AddListDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	require.NoError(t, AddFlight(ctx, store, testLogger(), "QR 1335", admin()))
	require.NoError(t, AddFlight(ctx, store, testLogger(), "ET 338", admin()))
	require.NoError(t, AddSupervisor(ctx, store, testLogger(), "J. Banda", admin()))

	lists, err := ListReferenceLists(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"QR 1335", "ET 338"}, lists.Flights)
	assert.Equal(t, []string{"J. Banda"}, lists.Supervisors)

	require.NoError(t, DeleteFlight(ctx, store, testLogger(), "QR 1335", admin()))

	lists, err = ListReferenceLists(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"ET 338"}, lists.Flights)
}

func TestReferenceLists_DuplicateRejectedCaseInsensitively(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	require.NoError(t, AddFlight(ctx, store, testLogger(), "QR 1335", admin()))

	err := AddFlight(ctx, store, testLogger(), "qr 1335", admin())
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "flight")
}

func TestReferenceLists_BlankNameRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	err := AddSupervisor(ctx, store, testLogger(), "   ", admin())
	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "supervisor")
}

func TestReferenceLists_DeleteMissingIsNotFound(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	var notFound *NotFoundError
	err := DeleteSupervisor(ctx, store, testLogger(), "nobody", admin())
	require.ErrorAs(t, err, &notFound)
}

func TestReferenceLists_AdminOnly(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	var permErr *PermissionError

	err := AddFlight(ctx, store, testLogger(), "QR 1335", teamLead("alice"))
	require.ErrorAs(t, err, &permErr)

	err = DeleteFlight(ctx, store, testLogger(), "QR 1335", dataAnalyst("dana"))
	require.ErrorAs(t, err, &permErr)
}

func TestExpectedFlights(t *testing.T) {
	schedules := []config.FlightSchedule{
		{Flight: "QR 1335", RRule: "FREQ=WEEKLY;BYDAY=WE"},
		{Flight: "ET 338", RRule: "FREQ=WEEKLY;BYDAY=MO"},
		{Flight: "KQ 752"}, // unscheduled, always expected
	}

	// 2024-01-10 is a Wednesday
	expected, err := ExpectedFlights(schedules, "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"QR 1335", "KQ 752"}, expected)

	// 2024-01-08 is a Monday
	expected, err = ExpectedFlights(schedules, "2024-01-08")
	require.NoError(t, err)
	assert.Equal(t, []string{"ET 338", "KQ 752"}, expected)
}

func TestExpectedFlights_InvalidRule(t *testing.T) {
	schedules := []config.FlightSchedule{
		{Flight: "QR 1335", RRule: "EVERY WEDNESDAY"},
	}

	_, err := ExpectedFlights(schedules, "2024-01-10")
	assert.Error(t, err)
}

func TestExpectedFlights_InvalidDate(t *testing.T) {
	_, err := ExpectedFlights(nil, "Jan 10")
	assert.Error(t, err)
}
