package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
	"github.com/collectionsdesk/paxcash/pkg/core/validation"
)

// CommentStore defines the database operations needed for report comments
type CommentStore interface {
	GetReport(ctx context.Context, id string) (*model.Report, error)
	InsertComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, id string) (*model.Comment, error)
	GetCommentsByReport(ctx context.Context, reportID string) ([]model.Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// AddComment attaches a remark to a report. Any active account may comment.
func AddComment(
	ctx context.Context,
	database CommentStore,
	logger *zap.Logger,
	reportID, content string,
	actingUser model.User,
) (*model.Comment, error) {
	if !actingUser.Active {
		return nil, &PermissionError{Reason: fmt.Sprintf("account %s is deactivated", actingUser.Username)}
	}

	if strings.TrimSpace(content) == "" {
		return nil, validationFailed(validation.FieldErrors{"content": "Comment content is required"})
	}

	report, err := database.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	if report == nil {
		return nil, &NotFoundError{Kind: "report", ID: reportID}
	}

	comment := &model.Comment{
		ID:        uuid.New().String(),
		ReportID:  reportID,
		Author:    actingUser.Username,
		Content:   content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := database.InsertComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	logger.Debug("Comment added",
		zap.String("report_id", reportID),
		zap.String("author", actingUser.Username))

	return comment, nil
}

// ListComments returns a report's comments, newest first
func ListComments(ctx context.Context, database CommentStore, reportID string) ([]model.Comment, error) {
	report, err := database.GetReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}
	if report == nil {
		return nil, &NotFoundError{Kind: "report", ID: reportID}
	}

	comments, err := database.GetCommentsByReport(ctx, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment. Only its author or an admin may do so.
func DeleteComment(
	ctx context.Context,
	database CommentStore,
	logger *zap.Logger,
	commentID string,
	actingUser model.User,
) error {
	comment, err := database.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("failed to fetch comment: %w", err)
	}
	if comment == nil {
		return &NotFoundError{Kind: "comment", ID: commentID}
	}

	if comment.Author != actingUser.Username && actingUser.Role != model.RoleAdmin {
		return &PermissionError{Reason: "comments can only be deleted by their author or an admin"}
	}

	if err := database.DeleteComment(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	logger.Debug("Comment deleted",
		zap.String("comment_id", commentID),
		zap.String("deleted_by", actingUser.Username))

	return nil
}
