package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"ipolls/internal/domain/comment"
)

// CommentStore implements persistence for ingested comments.
type CommentStore struct {
	db *pgxpool.Pool
}

// NewCommentStore creates a new comment store.
func NewCommentStore(db *pgxpool.Pool) *CommentStore {
	return &CommentStore{db: db}
}

// EnsureSchema creates the comments table when it does not exist yet.
func (s *CommentStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS comments (
			id         TEXT PRIMARY KEY,
			post_title TEXT NOT NULL DEFAULT '',
			body       TEXT NOT NULL,
			posted_at  TEXT NOT NULL DEFAULT '',
			score      INTEGER NOT NULL DEFAULT 0,
			party      TEXT NOT NULL DEFAULT '',
			sentiment  TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := s.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("error creating comments table: %w", err)
	}
	return nil
}

// SaveComments upserts a batch of comments by id. Re-ingesting the same
// comment refreshes its classification and sentiment.
func (s *CommentStore) SaveComments(ctx context.Context, comments []comment.Comment) error {
	query := `
		INSERT INTO comments (
			id, post_title, body, posted_at, score, party, sentiment
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET
			post_title = $2,
			body = $3,
			posted_at = $4,
			score = $5,
			party = $6,
			sentiment = $7
	`

	for _, c := range comments {
		_, err := s.db.Exec(
			ctx,
			query,
			c.ID,
			c.PostTitle,
			c.Text,
			c.PostedAt,
			c.Score,
			c.Party,
			c.Sentiment,
		)
		if err != nil {
			return fmt.Errorf("error saving comment %s: %w", c.ID, err)
		}
	}

	return nil
}

// ListComments returns every stored comment.
func (s *CommentStore) ListComments(ctx context.Context) ([]comment.Comment, error) {
	query := `
		SELECT id, post_title, body, posted_at, score, party, sentiment
		FROM comments
		ORDER BY posted_at
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	var comments []comment.Comment
	for rows.Next() {
		var c comment.Comment
		err := rows.Scan(
			&c.ID,
			&c.PostTitle,
			&c.Text,
			&c.PostedAt,
			&c.Score,
			&c.Party,
			&c.Sentiment,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// UpdateSentiment attaches a sentiment label to a stored comment.
func (s *CommentStore) UpdateSentiment(ctx context.Context, id, sentiment string) error {
	_, err := s.db.Exec(ctx, `UPDATE comments SET sentiment = $2 WHERE id = $1`, id, sentiment)
	if err != nil {
		return fmt.Errorf("error updating sentiment for %s: %w", id, err)
	}
	return nil
}

// CountComments returns the number of stored comments.
func (s *CommentStore) CountComments(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting comments: %w", err)
	}
	return n, nil
}
