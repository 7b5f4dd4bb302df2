package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"devconnector/internal/model"
)

// profileRepository implements ProfileRepository using sqlx
type profileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, user_id, company, website, location, status, skills, bio, github_username,
	youtube, facebook, twitter, instagram, linkedin, created_at, updated_at
`

// GetAll returns every profile with its experience and education lists.
func (r *profileRepository) GetAll(ctx context.Context) ([]model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`

	profiles := []model.Profile{}
	err := r.db.SelectContext(ctx, &profiles, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	for i := range profiles {
		if err := r.attachEntries(ctx, &profiles[i]); err != nil {
			return nil, err
		}
	}

	return profiles, nil
}

// GetByUserID retrieves the profile owned by the given user.
func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`

	var p model.Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	if err := r.attachEntries(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// Create inserts a new profile for a user.
func (r *profileRepository) Create(ctx context.Context, p *model.Profile) error {
	query := `
		INSERT INTO profiles (user_id, company, website, location, status, skills, bio,
		                      github_username, youtube, facebook, twitter, instagram, linkedin,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		p.UserID, p.Company, p.Website, p.Location, p.Status, p.Skills, p.Bio,
		p.GithubUsername, p.Youtube, p.Facebook, p.Twitter, p.Instagram, p.Linkedin,
	)

	if err := row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

// Update rewrites every mutable column. The service layer merges supplied
// fields into the existing row first, so unsupplied fields survive.
func (r *profileRepository) Update(ctx context.Context, p *model.Profile) error {
	query := `
		UPDATE profiles
		SET company = $1, website = $2, location = $3, status = $4, skills = $5,
		    bio = $6, github_username = $7, youtube = $8, facebook = $9,
		    twitter = $10, instagram = $11, linkedin = $12, updated_at = NOW()
		WHERE user_id = $13
		RETURNING updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		p.Company, p.Website, p.Location, p.Status, p.Skills,
		p.Bio, p.GithubUsername, p.Youtube, p.Facebook,
		p.Twitter, p.Instagram, p.Linkedin, p.UserID,
	)

	if err := row.Scan(&p.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return model.ErrProfileNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}

	return nil
}

// DeleteByUserID removes a user's profile inside the caller's transaction.
// Experience and education rows go with it via ON DELETE CASCADE.
// Deleting a missing profile is not an error.
func (r *profileRepository) DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	_, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}

// AddExperience inserts an experience entry.
func (r *profileRepository) AddExperience(ctx context.Context, exp *model.Experience) error {
	query := `
		INSERT INTO experiences (id, profile_id, title, company, location, from_date,
		                         to_date, current, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		exp.ID, exp.ProfileID, exp.Title, exp.Company, exp.Location,
		exp.From, exp.To, exp.Current, exp.Description,
	)

	if err := row.Scan(&exp.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert experience: %w", err)
	}

	return nil
}

// DeleteExperience removes an experience entry by id, scoped to the profile
// so one user can never delete another's entry.
func (r *profileRepository) DeleteExperience(ctx context.Context, profileID int64, experienceID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM experiences WHERE id = $1 AND profile_id = $2`, experienceID, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete experience: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return model.ErrExperienceNotFound
	}

	return nil
}

// AddEducation inserts an education entry.
func (r *profileRepository) AddEducation(ctx context.Context, edu *model.Education) error {
	query := `
		INSERT INTO educations (id, profile_id, school, degree, field_of_study, from_date,
		                        to_date, current, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING created_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		edu.ID, edu.ProfileID, edu.School, edu.Degree, edu.FieldOfStudy,
		edu.From, edu.To, edu.Current, edu.Description,
	)

	if err := row.Scan(&edu.CreatedAt); err != nil {
		return fmt.Errorf("failed to insert education: %w", err)
	}

	return nil
}

// DeleteEducation removes an education entry by id, scoped to the profile.
func (r *profileRepository) DeleteEducation(ctx context.Context, profileID int64, educationID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM educations WHERE id = $1 AND profile_id = $2`, educationID, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete education: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if rows == 0 {
		return model.ErrEducationNotFound
	}

	return nil
}

// attachEntries loads the experience and education lists, newest first,
// and folds the social columns into the sub-record.
func (r *profileRepository) attachEntries(ctx context.Context, p *model.Profile) error {
	expQuery := `
		SELECT id, profile_id, title, company, location, from_date, to_date, current, description, created_at
		FROM experiences
		WHERE profile_id = $1
		ORDER BY created_at DESC
	`
	p.Experience = []model.Experience{}
	if err := r.db.SelectContext(ctx, &p.Experience, expQuery, p.ID); err != nil {
		return fmt.Errorf("failed to list experiences: %w", err)
	}

	eduQuery := `
		SELECT id, profile_id, school, degree, field_of_study, from_date, to_date, current, description, created_at
		FROM educations
		WHERE profile_id = $1
		ORDER BY created_at DESC
	`
	p.Education = []model.Education{}
	if err := r.db.SelectContext(ctx, &p.Education, eduQuery, p.ID); err != nil {
		return fmt.Errorf("failed to list educations: %w", err)
	}

	p.BuildSocial()
	return nil
}
