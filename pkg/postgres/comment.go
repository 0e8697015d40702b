package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/collectionsdesk/paxcash/pkg/core/model"
)

// InsertComment stores a new report comment
func (d *DB) InsertComment(ctx context.Context, comment *model.Comment) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO report_comment (id, report_id, author, content, created_at)
		VALUES ($1, $2, $3, $4, $5::timestamptz)
	`, comment.ID, comment.ReportID, comment.Author, comment.Content, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// GetComment retrieves one comment by ID. Returns nil when no comment exists.
func (d *DB) GetComment(ctx context.Context, id string) (*model.Comment, error) {
	var comment model.Comment
	var createdAt time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT id, report_id, author, content, created_at
		FROM report_comment WHERE id = $1
	`, id).Scan(&comment.ID, &comment.ReportID, &comment.Author, &comment.Content, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query comment: %w", err)
	}
	comment.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &comment, nil
}

// GetCommentsByReport retrieves a report's comments, newest first
func (d *DB) GetCommentsByReport(ctx context.Context, reportID string) ([]model.Comment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, report_id, author, content, created_at
		FROM report_comment
		WHERE report_id = $1
		ORDER BY created_at DESC
	`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []model.Comment
	for rows.Next() {
		var comment model.Comment
		var createdAt time.Time
		if err := rows.Scan(&comment.ID, &comment.ReportID, &comment.Author, &comment.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comment.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes a comment
func (d *DB) DeleteComment(ctx context.Context, id string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM report_comment WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
