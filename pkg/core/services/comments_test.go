package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
)

func TestAddAndListComments(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice"))

	first, err := AddComment(ctx, store, testLogger(), report.ID, "refunds look high", dataAnalyst("dana"))
	require.NoError(t, err)
	assert.Equal(t, "dana", first.Author)
	assert.NotEmpty(t, first.CreatedAt)

	// Force distinct timestamps so ordering is deterministic
	second, err := AddComment(ctx, store, testLogger(), report.ID, "recounted, figure stands", teamLead("alice"))
	require.NoError(t, err)
	stored := store.comments[second.ID]
	stored.CreatedAt = first.CreatedAt + "z"
	store.comments[second.ID] = stored

	comments, err := ListComments(ctx, store, report.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "alice", comments[0].Author)
	assert.Equal(t, "dana", comments[1].Author)
}

func TestAddComment_BlankContentRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice"))

	_, err := AddComment(ctx, store, testLogger(), report.ID, "  ", dataAnalyst("dana"))

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "content")
}

func TestAddComment_MissingReport(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	_, err := AddComment(ctx, store, testLogger(), "no-such-id", "hello", dataAnalyst("dana"))

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAddComment_DeactivatedUserRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice"))

	inactive := dataAnalyst("dana")
	inactive.Active = false

	_, err := AddComment(ctx, store, testLogger(), report.ID, "hello", inactive)

	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)
}

func TestDeleteComment_AuthorOrAdmin(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	report := mustSubmit(t, store, teamLead("alice"))

	comment, err := AddComment(ctx, store, testLogger(), report.ID, "note", dataAnalyst("dana"))
	require.NoError(t, err)

	// A third party may not delete it
	err = DeleteComment(ctx, store, testLogger(), comment.ID, teamLead("alice"))
	var permErr *PermissionError
	require.ErrorAs(t, err, &permErr)

	// The author may
	require.NoError(t, DeleteComment(ctx, store, testLogger(), comment.ID, dataAnalyst("dana")))

	// An admin may delete anyone's
	comment, err = AddComment(ctx, store, testLogger(), report.ID, "another", dataAnalyst("dana"))
	require.NoError(t, err)
	require.NoError(t, DeleteComment(ctx, store, testLogger(), comment.ID, admin()))

	comments, err := ListComments(ctx, store, report.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDeleteComment_Missing(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	var notFound *NotFoundError
	err := DeleteComment(ctx, store, testLogger(), "no-such-id", model.User{Username: "dana", Role: model.RoleDataAnalyst, Active: true})
	require.ErrorAs(t, err, &notFound)
}
