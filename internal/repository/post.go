package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"devconnector/internal/model"
)

// postRepository implements PostRepository using sqlx
type postRepository struct {
	db *sqlx.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post with the author's denormalized name and avatar.
func (r *postRepository) Create(ctx context.Context, p *model.Post) error {
	query := `
		INSERT INTO posts (user_id, text, name, avatar, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	row := r.db.QueryRowxContext(ctx, query, p.UserID, p.Text, p.Name, p.Avatar)
	if err := row.Scan(&p.ID, &p.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	p.Likes = []model.Like{}
	p.Comments = []model.Comment{}
	return nil
}

// GetAll returns every post, newest first, with likes and comments attached.
func (r *postRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT id, user_id, text, name, avatar, created_at
		FROM posts
		ORDER BY created_at DESC
	`

	posts := []model.Post{}
	err := r.db.SelectContext(ctx, &posts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	for i := range posts {
		if err := r.attachEntries(ctx, &posts[i]); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

// GetByID retrieves a single post with likes and comments attached.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `
		SELECT id, user_id, text, name, avatar, created_at
		FROM posts
		WHERE id = $1
	`

	var p model.Post
	err := r.db.GetContext(ctx, &p, query, postID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}

	if err := r.attachEntries(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// Exists checks if a post id resolves.
func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, postID)
	if err != nil {
		return false, fmt.Errorf("failed to check post existence: %w", err)
	}

	return exists, nil
}

// Delete removes a post. Likes and comments go with it via ON DELETE CASCADE.
func (r *postRepository) Delete(ctx context.Context, postID int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}

	return nil
}

// DeleteByUserID removes every post a user owns inside the caller's
// transaction. Account deletion cascades through here.
func (r *postRepository) DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user posts: %w", err)
	}
	return nil
}

// HasLike reports whether the user currently likes the post.
func (r *postRepository) HasLike(ctx context.Context, postID, userID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM post_likes WHERE post_id = $1 AND user_id = $2)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, postID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}

	return exists, nil
}

// AddLike records a like. The (post_id, user_id) primary key guarantees a
// user appears at most once even under racing toggles.
func (r *postRepository) AddLike(ctx context.Context, postID, userID int64) error {
	query := `
		INSERT INTO post_likes (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (post_id, user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

// RemoveLike drops a like if present.
func (r *postRepository) RemoveLike(ctx context.Context, postID, userID int64) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// GetLikes returns a post's likes, newest first. The serial id gives strict
// insertion order even when created_at values collide.
func (r *postRepository) GetLikes(ctx context.Context, postID int64) ([]model.Like, error) {
	query := `
		SELECT user_id
		FROM post_likes
		WHERE post_id = $1
		ORDER BY id DESC
	`

	likes := []model.Like{}
	if err := r.db.SelectContext(ctx, &likes, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}

	return likes, nil
}

// AddComment inserts a comment with the commenter's denormalized name and avatar.
func (r *postRepository) AddComment(ctx context.Context, c *model.Comment) error {
	query := `
		INSERT INTO comments (id, post_id, user_id, text, name, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING created_at
	`

	row := r.db.QueryRowxContext(ctx, query, c.ID, c.PostID, c.UserID, c.Text, c.Name, c.Avatar)
	if err := row.Scan(&c.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetComment retrieves a single comment by id.
func (r *postRepository) GetComment(ctx context.Context, commentID string) (*model.Comment, error) {
	query := `
		SELECT id, post_id, user_id, text, name, avatar, created_at
		FROM comments
		WHERE id = $1
	`

	var c model.Comment
	err := r.db.GetContext(ctx, &c, query, commentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &c, nil
}

// DeleteComment removes a comment by id.
func (r *postRepository) DeleteComment(ctx context.Context, commentID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, commentID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return model.ErrCommentNotFound
	}

	return nil
}

// GetComments returns a post's comments, newest first.
func (r *postRepository) GetComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	query := `
		SELECT id, post_id, user_id, text, name, avatar, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC
	`

	comments := []model.Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// attachEntries loads the likes and comments lists for a post.
func (r *postRepository) attachEntries(ctx context.Context, p *model.Post) error {
	likes, err := r.GetLikes(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Likes = likes

	comments, err := r.GetComments(ctx, p.ID)
	if err != nil {
		return err
	}
	p.Comments = comments

	return nil
}
