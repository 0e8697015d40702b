package services

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/pkg/core/activation"
	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/db"
)

// fakeStore is an in-memory implementation of every store interface the
// services need, for tests only
type fakeStore struct {
	reports     map[string]model.Report
	users       map[string]model.User
	comments    map[string]model.Comment
	activations []model.ActivationRecord
	flights     []string
	supervisors []string
	gate        *activation.Activation
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		reports:  map[string]model.Report{},
		users:    map[string]model.User{},
		comments: map[string]model.Comment{},
	}
}

func (f *fakeStore) InsertReport(ctx context.Context, report *model.Report) error {
	f.reports[report.ID] = *report
	return nil
}

func (f *fakeStore) GetReport(ctx context.Context, id string) (*model.Report, error) {
	report, ok := f.reports[id]
	if !ok {
		return nil, nil
	}
	return &report, nil
}

func (f *fakeStore) UpdateReport(ctx context.Context, report *model.Report) error {
	f.reports[report.ID] = *report
	return nil
}

func (f *fakeStore) DeleteReport(ctx context.Context, id string) error {
	delete(f.reports, id)
	return nil
}

func (f *fakeStore) GetReportsByUser(ctx context.Context, username string) ([]model.Report, error) {
	var out []model.Report
	for _, report := range f.reports {
		if report.SubmittedBy == username {
			out = append(out, report)
		}
	}
	sortReportsByDateDesc(out)
	return out, nil
}

func (f *fakeStore) GetReports(ctx context.Context, filter db.ReportFilter) ([]model.Report, error) {
	var out []model.Report
	for _, report := range f.reports {
		if filter.VerifiedOnly && !report.Verified {
			continue
		}
		if filter.Supervisor != "" && !strings.Contains(strings.ToLower(report.Supervisor), strings.ToLower(filter.Supervisor)) {
			continue
		}
		if filter.Flight != "" && !strings.Contains(strings.ToLower(report.FlightName), strings.ToLower(filter.Flight)) {
			continue
		}
		if filter.DateFrom != "" && report.Date < filter.DateFrom {
			continue
		}
		if filter.DateTo != "" && report.Date > filter.DateTo {
			continue
		}
		out = append(out, report)
	}
	sortReportsByDateDesc(out)
	return out, nil
}

func (f *fakeStore) GetUser(ctx context.Context, username string) (*model.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (f *fakeStore) GetUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	for _, user := range f.users {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeStore) InsertUser(ctx context.Context, user *model.User) error {
	f.users[user.Username] = *user
	return nil
}

func (f *fakeStore) UpdateUser(ctx context.Context, user *model.User) error {
	f.users[user.Username] = *user
	return nil
}

func (f *fakeStore) DeleteUser(ctx context.Context, username string) error {
	delete(f.users, username)
	return nil
}

func (f *fakeStore) InsertActivationRecord(ctx context.Context, record *model.ActivationRecord) error {
	f.activations = append(f.activations, *record)
	return nil
}

func (f *fakeStore) GetRecentActivations(ctx context.Context, limit int) ([]model.ActivationRecord, error) {
	records := append([]model.ActivationRecord(nil), f.activations...)
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (f *fakeStore) GetFlights(ctx context.Context) ([]string, error) {
	return append([]string(nil), f.flights...), nil
}

func (f *fakeStore) AddFlight(ctx context.Context, name string) error {
	f.flights = append(f.flights, name)
	return nil
}

func (f *fakeStore) DeleteFlight(ctx context.Context, name string) error {
	f.flights = removeName(f.flights, name)
	return nil
}

func (f *fakeStore) GetSupervisors(ctx context.Context) ([]string, error) {
	return append([]string(nil), f.supervisors...), nil
}

func (f *fakeStore) AddSupervisor(ctx context.Context, name string) error {
	f.supervisors = append(f.supervisors, name)
	return nil
}

func (f *fakeStore) DeleteSupervisor(ctx context.Context, name string) error {
	f.supervisors = removeName(f.supervisors, name)
	return nil
}

func (f *fakeStore) InsertComment(ctx context.Context, comment *model.Comment) error {
	f.comments[comment.ID] = *comment
	return nil
}

func (f *fakeStore) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	return &comment, nil
}

func (f *fakeStore) GetCommentsByReport(ctx context.Context, reportID string) ([]model.Comment, error) {
	var out []model.Comment
	for _, comment := range f.comments {
		if comment.ReportID == reportID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (f *fakeStore) DeleteComment(ctx context.Context, id string) error {
	delete(f.comments, id)
	return nil
}

// fakeStore also backs the activation gate in tests

func (f *fakeStore) GetActivation(ctx context.Context) (*activation.Activation, error) {
	if f.gate == nil {
		return nil, nil
	}
	copied := *f.gate
	return &copied, nil
}

func (f *fakeStore) SetActivation(ctx context.Context, a activation.Activation) error {
	f.gate = &a
	return nil
}

func (f *fakeStore) ClearActivation(ctx context.Context) error {
	f.gate = nil
	return nil
}

func removeName(names []string, name string) []string {
	out := names[:0]
	for _, entry := range names {
		if entry != name {
			out = append(out, entry)
		}
	}
	return out
}

func sortReportsByDateDesc(reports []model.Report) {
	sort.Slice(reports, func(i, j int) bool { return reports[i].Date > reports[j].Date })
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func teamLead(username string) model.User {
	return model.User{Username: username, Role: model.RoleTeamLead, Active: true}
}

func dataAnalyst(username string) model.User {
	return model.User{Username: username, Role: model.RoleDataAnalyst, Active: true}
}

func admin() model.User {
	return model.User{Username: "admin", Role: model.RoleAdmin, Active: true}
}

func cashController(username string) model.User {
	return model.User{Username: username, Role: model.RoleCashController, Active: true}
}
