package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"devconnector/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Delete(ctx context.Context, tx *sqlx.Tx, id int64) error
}

type ProfileRepository interface {
	GetAll(ctx context.Context) ([]model.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
	Update(ctx context.Context, profile *model.Profile) error
	DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error
	AddExperience(ctx context.Context, exp *model.Experience) error
	DeleteExperience(ctx context.Context, profileID int64, experienceID string) error
	AddEducation(ctx context.Context, edu *model.Education) error
	DeleteEducation(ctx context.Context, profileID int64, educationID string) error
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetAll(ctx context.Context) ([]model.Post, error)
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	Exists(ctx context.Context, postID int64) (bool, error)
	Delete(ctx context.Context, postID int64) error
	DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error
	// Like methods
	HasLike(ctx context.Context, postID, userID int64) (bool, error)
	AddLike(ctx context.Context, postID, userID int64) error
	RemoveLike(ctx context.Context, postID, userID int64) error
	GetLikes(ctx context.Context, postID int64) ([]model.Like, error)
	// Comment methods
	AddComment(ctx context.Context, comment *model.Comment) error
	GetComment(ctx context.Context, commentID string) (*model.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
	GetComments(ctx context.Context, postID int64) ([]model.Comment, error)
}
