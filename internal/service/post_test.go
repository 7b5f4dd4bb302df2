package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"devconnector/internal/model"
)

// mockPostRepository implements repository.PostRepository with an in-memory
// like set plus function fields for the remaining behavior.
type mockPostRepository struct {
	existsFn       func(ctx context.Context, postID int64) (bool, error)
	getByIDFn      func(ctx context.Context, postID int64) (*model.Post, error)
	getCommentFn   func(ctx context.Context, commentID string) (*model.Comment, error)
	deleteFn       func(ctx context.Context, postID int64) error
	addCommentFn   func(ctx context.Context, comment *model.Comment) error
	getCommentsFn  func(ctx context.Context, postID int64) ([]model.Comment, error)
	deletedComment string

	likes []model.Like // newest first
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	post.ID = 1
	post.CreatedAt = time.Now()
	post.Likes = []model.Like{}
	post.Comments = []model.Comment{}
	return nil
}

func (m *mockPostRepository) GetAll(ctx context.Context) ([]model.Post, error) {
	return []model.Post{}, nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, postID)
	}
	return true, nil
}

func (m *mockPostRepository) Delete(ctx context.Context, postID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, postID)
	}
	return nil
}

func (m *mockPostRepository) DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	return nil
}

func (m *mockPostRepository) HasLike(ctx context.Context, postID, userID int64) (bool, error) {
	for _, l := range m.likes {
		if l.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockPostRepository) AddLike(ctx context.Context, postID, userID int64) error {
	m.likes = append([]model.Like{{UserID: userID}}, m.likes...)
	return nil
}

func (m *mockPostRepository) RemoveLike(ctx context.Context, postID, userID int64) error {
	out := m.likes[:0]
	for _, l := range m.likes {
		if l.UserID != userID {
			out = append(out, l)
		}
	}
	m.likes = out
	return nil
}

func (m *mockPostRepository) GetLikes(ctx context.Context, postID int64) ([]model.Like, error) {
	return append([]model.Like{}, m.likes...), nil
}

func (m *mockPostRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	if m.addCommentFn != nil {
		return m.addCommentFn(ctx, comment)
	}
	return nil
}

func (m *mockPostRepository) GetComment(ctx context.Context, commentID string) (*model.Comment, error) {
	if m.getCommentFn != nil {
		return m.getCommentFn(ctx, commentID)
	}
	return nil, model.ErrCommentNotFound
}

func (m *mockPostRepository) DeleteComment(ctx context.Context, commentID string) error {
	m.deletedComment = commentID
	return nil
}

func (m *mockPostRepository) GetComments(ctx context.Context, postID int64) ([]model.Comment, error) {
	if m.getCommentsFn != nil {
		return m.getCommentsFn(ctx, postID)
	}
	return []model.Comment{}, nil
}

func userRepoWith(user *model.User) *mockUserRepository {
	return &mockUserRepository{
		getByIDFn: func(ctx context.Context, id int64) (*model.User, error) {
			if user != nil && user.ID == id {
				return user, nil
			}
			return nil, model.ErrUserNotFound
		},
	}
}

func TestPostService_Create_DenormalizesAuthor(t *testing.T) {
	author := &model.User{ID: 5, Name: "Jane Doe", Avatar: "https://www.gravatar.com/avatar/abc?s=200&r=pg&d=mm"}
	postRepo := &mockPostRepository{}
	svc := NewPostService(postRepo, userRepoWith(author))

	post, err := svc.Create(context.Background(), 5, model.CreatePostRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if post.Name != author.Name {
		t.Errorf("post name = %q, want author name %q", post.Name, author.Name)
	}
	if post.Avatar != author.Avatar {
		t.Errorf("post avatar = %q, want author avatar %q", post.Avatar, author.Avatar)
	}
	if post.UserID != 5 {
		t.Errorf("post user = %d, want 5", post.UserID)
	}
}

func TestPostService_ToggleLike_Idempotent(t *testing.T) {
	postRepo := &mockPostRepository{}
	svc := NewPostService(postRepo, userRepoWith(nil))

	// First toggle: like appears exactly once.
	likes, err := svc.ToggleLike(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != 5 {
		t.Fatalf("likes after one toggle = %v, want exactly [{5}]", likes)
	}

	// Second toggle: back to the unliked state.
	likes, err = svc.ToggleLike(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("likes after two toggles = %v, want empty", likes)
	}
}

func TestPostService_ToggleLike_IndependentUsers(t *testing.T) {
	postRepo := &mockPostRepository{}
	svc := NewPostService(postRepo, userRepoWith(nil))

	if _, err := svc.ToggleLike(context.Background(), 1, 5); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	likes, err := svc.ToggleLike(context.Background(), 1, 6)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(likes) != 2 {
		t.Fatalf("likes = %v, want two entries", likes)
	}
	// Newest first.
	if likes[0].UserID != 6 || likes[1].UserID != 5 {
		t.Errorf("likes order = %v, want newest first [6 5]", likes)
	}
}

func TestPostService_ToggleLike_MissingPost(t *testing.T) {
	postRepo := &mockPostRepository{
		existsFn: func(ctx context.Context, postID int64) (bool, error) {
			return false, nil
		},
	}
	svc := NewPostService(postRepo, userRepoWith(nil))

	if _, err := svc.ToggleLike(context.Background(), 99, 5); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got: %v", err)
	}
}

func TestPostService_Delete_OwnerOnly(t *testing.T) {
	postRepo := &mockPostRepository{
		getByIDFn: func(ctx context.Context, postID int64) (*model.Post, error) {
			return &model.Post{ID: postID, UserID: 5}, nil
		},
	}
	svc := NewPostService(postRepo, userRepoWith(nil))

	if err := svc.Delete(context.Background(), 1, 6); !errors.Is(err, model.ErrNotPostOwner) {
		t.Errorf("expected ErrNotPostOwner for foreign delete, got: %v", err)
	}
	if err := svc.Delete(context.Background(), 1, 5); err != nil {
		t.Errorf("owner delete: expected no error, got: %v", err)
	}
}

func TestPostService_Delete_MissingPost(t *testing.T) {
	postRepo := &mockPostRepository{}
	svc := NewPostService(postRepo, userRepoWith(nil))

	if err := svc.Delete(context.Background(), 99, 5); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("expected ErrPostNotFound, got: %v", err)
	}
}

func TestPostService_DeleteComment_AuthorOnly(t *testing.T) {
	postRepo := &mockPostRepository{
		getCommentFn: func(ctx context.Context, commentID string) (*model.Comment, error) {
			return &model.Comment{ID: commentID, PostID: 1, UserID: 5}, nil
		},
	}
	svc := NewPostService(postRepo, userRepoWith(nil))

	_, err := svc.DeleteComment(context.Background(), 1, "c-1", 6)
	if !errors.Is(err, model.ErrNotCommentAuthor) {
		t.Fatalf("expected ErrNotCommentAuthor, got: %v", err)
	}
	if postRepo.deletedComment != "" {
		t.Error("comment must remain when the requester is not its author")
	}

	if _, err := svc.DeleteComment(context.Background(), 1, "c-1", 5); err != nil {
		t.Fatalf("author delete: expected no error, got: %v", err)
	}
	if postRepo.deletedComment != "c-1" {
		t.Errorf("deleted comment = %q, want c-1", postRepo.deletedComment)
	}
}

func TestPostService_DeleteComment_WrongPost(t *testing.T) {
	postRepo := &mockPostRepository{
		getCommentFn: func(ctx context.Context, commentID string) (*model.Comment, error) {
			return &model.Comment{ID: commentID, PostID: 2, UserID: 5}, nil
		},
	}
	svc := NewPostService(postRepo, userRepoWith(nil))

	// The comment exists but belongs to another post.
	if _, err := svc.DeleteComment(context.Background(), 1, "c-1", 5); !errors.Is(err, model.ErrCommentNotFound) {
		t.Errorf("expected ErrCommentNotFound, got: %v", err)
	}
}

func TestPostService_AddComment_DenormalizesAuthor(t *testing.T) {
	author := &model.User{ID: 5, Name: "Jane Doe", Avatar: "avatar-url"}
	var saved *model.Comment
	postRepo := &mockPostRepository{
		addCommentFn: func(ctx context.Context, comment *model.Comment) error {
			saved = comment
			return nil
		},
		getCommentsFn: func(ctx context.Context, postID int64) ([]model.Comment, error) {
			return []model.Comment{*saved}, nil
		},
	}
	svc := NewPostService(postRepo, userRepoWith(author))

	comments, err := svc.AddComment(context.Background(), 1, 5, model.CreateCommentRequest{Text: "nice"})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if saved == nil {
		t.Fatal("expected the comment to be stored")
	}
	if saved.ID == "" {
		t.Error("comment should get a generated identifier")
	}
	if saved.Name != author.Name || saved.Avatar != author.Avatar {
		t.Errorf("comment author fields = (%q, %q), want denormalized (%q, %q)",
			saved.Name, saved.Avatar, author.Name, author.Avatar)
	}
	if len(comments) != 1 {
		t.Errorf("comments = %v, want the updated single-entry list", comments)
	}
}
