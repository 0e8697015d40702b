package db

import (
	"context"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
)

// ReportFilter narrows report listings and exports. Zero values mean
// "no constraint". Supervisor and Flight match as case-insensitive
// substrings; the date range is inclusive.
type ReportFilter struct {
	Supervisor   string
	Flight       string
	DateFrom     string // Date format (2006-01-02)
	DateTo       string
	VerifiedOnly bool
}

// ReportStore defines the interface for report database operations
type ReportStore interface {
	InsertReport(ctx context.Context, report *model.Report) error
	GetReport(ctx context.Context, id string) (*model.Report, error)
	UpdateReport(ctx context.Context, report *model.Report) error
	DeleteReport(ctx context.Context, id string) error
	GetReportsByUser(ctx context.Context, username string) ([]model.Report, error)
	GetReports(ctx context.Context, filter ReportFilter) ([]model.Report, error)
}

// UserStore defines the interface for user database operations
type UserStore interface {
	GetUser(ctx context.Context, username string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
	InsertUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, username string) error
}

// ActivationHistoryStore records granted edit windows for auditing.
// The live window itself lives behind activation.Store.
type ActivationHistoryStore interface {
	InsertActivationRecord(ctx context.Context, record *model.ActivationRecord) error
	GetRecentActivations(ctx context.Context, limit int) ([]model.ActivationRecord, error)
}

// ReferenceStore defines the interface for flight/supervisor reference lists
type ReferenceStore interface {
	GetFlights(ctx context.Context) ([]string, error)
	AddFlight(ctx context.Context, name string) error
	DeleteFlight(ctx context.Context, name string) error
	GetSupervisors(ctx context.Context) ([]string, error)
	AddSupervisor(ctx context.Context, name string) error
	DeleteSupervisor(ctx context.Context, name string) error
}

// CommentStore defines the interface for report comment operations
type CommentStore interface {
	InsertComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	GetCommentsByReport(ctx context.Context, reportID string) ([]model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}
