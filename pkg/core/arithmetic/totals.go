package arithmetic

import "github.com/collectionsdesk/paxcash/pkg/core/model"

// ComputeTotals derives every total and difference field from a set of raw
// passenger counts. It is the only place in the codebase allowed to compute
// these values.
//
// The gross sum excludes refunds; refunds are then subtracted to produce the
// attended total. The IICS side reconciles against the gross sum, the GIA
// side against the attended total.
func ComputeTotals(counts model.RawCounts) model.Totals {
	sumAll := counts.Paid +
		counts.Diplomats +
		counts.Infants +
		counts.NotPaid +
		counts.PaidCardQr +
		counts.Deportees +
		counts.Transit +
		counts.Waivers +
		counts.PrepaidBank +
		counts.RoundTrip +
		counts.LatePayment

	totalAttended := sumAll - counts.Refunds
	iicsTotal := sumAll
	giaTotal := totalAttended

	return model.Totals{
		TotalAttended:       totalAttended,
		IicsInfant:          counts.Infants,
		IicsAdult:           iicsTotal - counts.Infants,
		IicsTotal:           iicsTotal,
		GiaInfant:           counts.Infants,
		GiaAdult:            giaTotal - counts.Infants,
		GiaTotal:            giaTotal,
		IicsTotalDifference: iicsTotal - totalAttended,
		GiaTotalDifference:  giaTotal - totalAttended,
	}
}
