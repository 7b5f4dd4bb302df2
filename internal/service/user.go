package service

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/jmoiron/sqlx"

	"devconnector/internal/model"
	"devconnector/internal/repository"
)

// UserService handles registration, login and account deletion.
type UserService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	postRepo    repository.PostRepository
	db          *sqlx.DB
	auth        *AuthService
}

func NewUserService(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	postRepo repository.PostRepository,
	db *sqlx.DB,
	auth *AuthService,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		db:          db,
		auth:        auth,
	}
}

// Register creates a user with a gravatar-derived avatar and returns a
// session token. A taken email yields model.ErrEmailExists.
//
// Known gap carried from the design: if token signing fails after the insert
// the user row remains; the caller gets an error and can retry login.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return "", model.ErrEmailExists
	}

	hashed, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Name:           req.Name,
		Email:          email,
		PasswordHashed: hashed,
		Avatar:         GravatarURL(email),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// Login authenticates by email and password and returns a session token.
// Unknown email and wrong password both return model.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			// Don't reveal whether the email exists or not
			return "", model.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !s.auth.CheckPassword(req.Password, user.PasswordHashed) {
		return "", model.ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ExistsByID reports whether a user id still resolves.
func (s *UserService) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.userRepo.ExistsByID(ctx, id)
}

// DeleteAccount removes the user plus their profile and posts in one
// transaction, so a half-deleted account never survives a crash.
func (s *UserService) DeleteAccount(ctx context.Context, userID int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.postRepo.DeleteByUserID(ctx, tx, userID); err != nil {
		return err
	}

	if err := s.profileRepo.DeleteByUserID(ctx, tx, userID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, tx, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	log.Printf("[UserService] Deleted account %d with profile and posts", userID)
	return nil
}

// GravatarURL derives the avatar image reference for an email:
// size 200, pg rating, "mm" default image.
func GravatarURL(email string) string {
	digest := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", digest)
}
