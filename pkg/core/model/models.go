package model

// Role identifies what a user is allowed to do
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleTeamLead       Role = "teamLead"
	RoleDataAnalyst    Role = "dataAnalyst"
	RoleCashController Role = "cashController"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleTeamLead, RoleDataAnalyst, RoleCashController:
		return true
	}
	return false
}

// Zone identifies which side of the terminal a flight was worked
type Zone string

const (
	ZoneArrival   Zone = "arrival"
	ZoneDeparture Zone = "departure"
)

func (z Zone) IsValid() bool {
	return z == ZoneArrival || z == ZoneDeparture
}

// User represents a system account
type User struct {
	Username     string
	PasswordHash string
	Role         Role
	Active       bool
	Gender       string
	Email        string
	Telephone    string
}

// RawCounts holds the twelve passenger counts a team lead submits per flight
type RawCounts struct {
	Paid        int
	Diplomats   int
	Infants     int
	NotPaid     int
	PaidCardQr  int
	Refunds     int
	Deportees   int
	Transit     int
	Waivers     int
	PrepaidBank int
	RoundTrip   int
	LatePayment int
}

// Totals holds every derived field recomputed from raw counts.
// Callers never set these independently.
type Totals struct {
	TotalAttended       int
	IicsInfant          int
	IicsAdult           int
	IicsTotal           int
	GiaInfant           int
	GiaAdult            int
	GiaTotal            int
	IicsTotalDifference int
	GiaTotalDifference  int
}

// Report is one submitted cash-collection record
type Report struct {
	ID         string
	Date       string // Date format (2006-01-02), no time component
	RefNo      string
	Supervisor string
	FlightName string
	Zone       Zone

	Counts RawCounts
	Totals Totals

	Verified    bool
	VerifiedBy  string // empty until verified
	Remarks     string
	SubmittedBy string
}

// ActivationRecord is one audit entry of a granted edit window
type ActivationRecord struct {
	ID          string
	Username    string
	Date        string
	ActivatedBy string
	CreatedAt   string // RFC3339
}

// Comment is a remark attached to a report by any signed-in user
type Comment struct {
	ID        string
	ReportID  string
	Author    string
	Content   string
	CreatedAt string // RFC3339
}

// ReferenceLists holds the admin-maintained names the entry form offers
type ReferenceLists struct {
	Flights     []string
	Supervisors []string
}
