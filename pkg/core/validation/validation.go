package validation

import (
	"strconv"
	"strings"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
)

// FieldErrors maps a field name to a human-readable message. An empty map
// means the payload is valid.
type FieldErrors map[string]string

func (e FieldErrors) Empty() bool {
	return len(e) == 0
}

// CountsPayload holds the twelve raw count fields as entered. They arrive as
// strings so a bad value can be reported against its own field instead of
// failing the whole request.
type CountsPayload struct {
	Paid        string
	Diplomats   string
	Infants     string
	NotPaid     string
	PaidCardQr  string
	Refunds     string
	Deportees   string
	Transit     string
	Waivers     string
	PrepaidBank string
	RoundTrip   string
	LatePayment string
}

// ReportPayload is the raw, uncoerced form input for a report submission
type ReportPayload struct {
	Date       string
	RefNo      string
	Supervisor string
	Flight     string
	Zone       string

	CountsPayload
}

// ValidateReport checks the team-lead submission payload: required dimension
// fields must be non-blank and each count must be a non-negative integer.
// Blank counts coerce to zero. The parsed counts are only meaningful when the
// returned FieldErrors is empty.
func ValidateReport(payload ReportPayload) (model.RawCounts, FieldErrors) {
	errs := FieldErrors{}

	requireField(errs, "date", payload.Date, "Date is required")
	requireField(errs, "refNo", payload.RefNo, "Ref No is required")
	requireField(errs, "supervisor", payload.Supervisor, "Supervisor is required")
	requireField(errs, "flight", payload.Flight, "Flight is required")
	requireField(errs, "zone", payload.Zone, "Zone is required")

	counts := parseCounts(errs, payload.CountsPayload)

	return counts, errs
}

// ValidateCounts checks only the twelve count fields. Used by the update
// paths, where the dimension fields are fixed on the stored report.
func ValidateCounts(payload CountsPayload) (model.RawCounts, FieldErrors) {
	errs := FieldErrors{}
	counts := parseCounts(errs, payload)
	return counts, errs
}

func parseCounts(errs FieldErrors, payload CountsPayload) model.RawCounts {
	return model.RawCounts{
		Paid:        parseCount(errs, "paid", payload.Paid),
		Diplomats:   parseCount(errs, "diplomats", payload.Diplomats),
		Infants:     parseCount(errs, "infants", payload.Infants),
		NotPaid:     parseCount(errs, "notPaid", payload.NotPaid),
		PaidCardQr:  parseCount(errs, "paidCardQr", payload.PaidCardQr),
		Refunds:     parseCount(errs, "refunds", payload.Refunds),
		Deportees:   parseCount(errs, "deportees", payload.Deportees),
		Transit:     parseCount(errs, "transit", payload.Transit),
		Waivers:     parseCount(errs, "waivers", payload.Waivers),
		PrepaidBank: parseCount(errs, "prepaidBank", payload.PrepaidBank),
		RoundTrip:   parseCount(errs, "roundTrip", payload.RoundTrip),
		LatePayment: parseCount(errs, "latePayment", payload.LatePayment),
	}
}

// ValidateReconciliation checks the six analyst-entered reconciliation values:
// all non-negative, and each total must equal its infant + adult split.
func ValidateReconciliation(iicsInfant, iicsAdult, iicsTotal, giaInfant, giaAdult, giaTotal int) FieldErrors {
	errs := FieldErrors{}

	requireNonNegative(errs, "iicsInfant", iicsInfant)
	requireNonNegative(errs, "iicsAdult", iicsAdult)
	requireNonNegative(errs, "iicsTotal", iicsTotal)
	requireNonNegative(errs, "giaInfant", giaInfant)
	requireNonNegative(errs, "giaAdult", giaAdult)
	requireNonNegative(errs, "giaTotal", giaTotal)

	if _, ok := errs["iicsTotal"]; !ok && iicsTotal != iicsInfant+iicsAdult {
		errs["iicsTotal"] = "IICS total must equal IICS infant + IICS adult"
	}
	if _, ok := errs["giaTotal"]; !ok && giaTotal != giaInfant+giaAdult {
		errs["giaTotal"] = "GIA total must equal GIA infant + GIA adult"
	}

	return errs
}

// ValidateAttendedAgainstReconciliation is the hard verification gate: a
// report cannot verify when either reconciliation total exceeds the attended
// count, since that would mean the reconciliation systems counted passengers
// the team lead never attended.
func ValidateAttendedAgainstReconciliation(totalAttended, iicsTotal, giaTotal int) FieldErrors {
	errs := FieldErrors{}

	requireNonNegative(errs, "totalAttended", totalAttended)
	requireNonNegative(errs, "iicsTotal", iicsTotal)
	requireNonNegative(errs, "giaTotal", giaTotal)

	if !errs.Empty() {
		return errs
	}

	if totalAttended < giaTotal || totalAttended < iicsTotal {
		errs["difference"] = "Total attended cannot be less than the IICS or GIA total"
	}

	return errs
}

func requireField(errs FieldErrors, field, value, message string) {
	if strings.TrimSpace(value) == "" {
		errs[field] = message
	}
}

func requireNonNegative(errs FieldErrors, field string, value int) {
	if value < 0 {
		errs[field] = "Must be zero or greater"
	}
}

// parseCount parses a single count field. Blank means zero; anything that is
// not a non-negative integer records an error against the field.
func parseCount(errs FieldErrors, field, value string) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		errs[field] = "Must be a number"
		return 0
	}
	if n < 0 {
		errs[field] = "Must be zero or greater"
		return 0
	}

	return n
}
