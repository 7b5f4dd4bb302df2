package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"devconnector/internal/model"
	"devconnector/internal/repository"
)

// PostService handles the posts feed, likes and comments.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// Create creates a post, capturing the author's name and avatar at this
// moment. Later profile edits do not touch existing posts.
func (s *PostService) Create(ctx context.Context, userID int64, req model.CreatePostRequest) (*model.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	log.Printf("[PostService] User %d created post %d", userID, post.ID)
	return post, nil
}

// GetAll returns every post, newest first.
func (s *PostService) GetAll(ctx context.Context) ([]model.Post, error) {
	return s.postRepo.GetAll(ctx)
}

// GetByID returns a single post.
func (s *PostService) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes a post. Only the owner may delete it.
func (s *PostService) Delete(ctx context.Context, postID, userID int64) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if post.UserID != userID {
		return model.ErrNotPostOwner
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	log.Printf("[PostService] User %d deleted post %d", userID, postID)
	return nil
}

// ToggleLike likes the post when the user has not liked it yet, and
// removes the like otherwise. Either direction succeeds; the updated likes
// list comes back newest first.
//
// The check-then-write pair is not atomic: two requests racing on the same
// post and user can each observe the pre-toggle state. The primary key on
// (post_id, user_id) keeps a user from ever appearing twice; a lost toggle
// under that race is a known limitation, not corruption.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID int64) ([]model.Like, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	liked, err := s.postRepo.HasLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.postRepo.RemoveLike(ctx, postID, userID)
	} else {
		err = s.postRepo.AddLike(ctx, postID, userID)
	}
	if err != nil {
		return nil, err
	}

	return s.postRepo.GetLikes(ctx, postID)
}

// AddComment appends a comment with the commenter's denormalized name and
// avatar and returns the post's updated comment list, newest first.
func (s *PostService) AddComment(ctx context.Context, postID, userID int64, req model.CreateCommentRequest) ([]model.Comment, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("check post exists: %w", err)
	}
	if !exists {
		return nil, model.ErrPostNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &model.Comment{
		ID:     uuid.New().String(),
		PostID: postID,
		UserID: userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}

	log.Printf("[PostService] User %d commented on post %d", userID, postID)
	return s.postRepo.GetComments(ctx, postID)
}

// DeleteComment removes a comment from a post. The comment must resolve
// within that post and only its author may delete it. Returns the post's
// updated comment list.
func (s *PostService) DeleteComment(ctx context.Context, postID int64, commentID string, userID int64) ([]model.Comment, error) {
	comment, err := s.postRepo.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.PostID != postID {
		return nil, model.ErrCommentNotFound
	}

	if comment.UserID != userID {
		return nil, model.ErrNotCommentAuthor
	}

	if err := s.postRepo.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}

	return s.postRepo.GetComments(ctx, postID)
}
