package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPayload() ReportPayload {
	return ReportPayload{
		Date:       "2024-01-10",
		RefNo:      "CC-20240110-0001",
		Supervisor: "J. Okello",
		Flight:     "KQ412",
		Zone:       "arrival",
		CountsPayload: CountsPayload{
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

func TestValidateReport_Valid(t *testing.T) {
	counts, errs := ValidateReport(validPayload())

	require.True(t, errs.Empty())
	assert.Equal(t, 100, counts.Paid)
	assert.Equal(t, 8, counts.Refunds)
	// Blank counts coerce to zero
	assert.Equal(t, 0, counts.Waivers)
	assert.Equal(t, 0, counts.RoundTrip)
}

func TestValidateReport_MissingDimensions(t *testing.T) {
	payload := validPayload()
	payload.Date = ""
	payload.Supervisor = "   "
	payload.Zone = ""

	_, errs := ValidateReport(payload)

	assert.Len(t, errs, 3)
	assert.Contains(t, errs, "date")
	assert.Contains(t, errs, "supervisor")
	assert.Contains(t, errs, "zone")
	assert.NotContains(t, errs, "refNo")
}

func TestValidateReport_BadCounts(t *testing.T) {
	tests := []struct {
		name  string
		value string
		field string
	}{
		{"non-numeric", "lots", "paid"},
		{"negative", "-3", "paid"},
		{"decimal", "1.5", "paid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validPayload()
			payload.Paid = tt.value

			_, errs := ValidateReport(payload)

			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestValidateCounts_IgnoresDimensions(t *testing.T) {
	counts, errs := ValidateCounts(CountsPayload{Paid: "10", Refunds: "2"})

	require.True(t, errs.Empty())
	assert.Equal(t, 10, counts.Paid)
	assert.Equal(t, 2, counts.Refunds)
}

func TestValidateReconciliation_Valid(t *testing.T) {
	errs := ValidateReconciliation(3, 116, 119, 3, 108, 111)

	assert.True(t, errs.Empty())
}

func TestValidateReconciliation_TotalMismatch(t *testing.T) {
	errs := ValidateReconciliation(3, 116, 120, 3, 108, 111)

	require.Len(t, errs, 1)
	assert.Contains(t, errs, "iicsTotal")
}

func TestValidateReconciliation_Negative(t *testing.T) {
	errs := ValidateReconciliation(-1, 116, 115, 3, 108, 111)

	assert.Contains(t, errs, "iicsInfant")
	// The sum check still fires against the total field
	assert.Contains(t, errs, "iicsTotal")
}

func TestValidateAttendedAgainstReconciliation(t *testing.T) {
	tests := []struct {
		name          string
		totalAttended int
		iicsTotal     int
		giaTotal      int
		wantField     string
	}{
		{"all equal", 111, 111, 111, ""},
		{"iics above attended", 111, 119, 111, "difference"},
		{"gia above attended", 111, 111, 112, "difference"},
		{"both below attended", 120, 119, 111, ""},
		{"negative attended", -1, 0, 0, "totalAttended"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateAttendedAgainstReconciliation(tt.totalAttended, tt.iicsTotal, tt.giaTotal)

			if tt.wantField == "" {
				assert.True(t, errs.Empty())
			} else {
				assert.Contains(t, errs, tt.wantField)
			}
		})
	}
}

func TestValidateAttendedAgainstReconciliation_IicsAboveIsAllowedUpToAttended(t *testing.T) {
	// iicsTotal == totalAttended is the boundary and must pass
	errs := ValidateAttendedAgainstReconciliation(119, 119, 111)

	assert.True(t, errs.Empty())
}
