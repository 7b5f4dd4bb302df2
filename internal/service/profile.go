package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"devconnector/internal/model"
	"devconnector/internal/repository"
)

// ProfileService handles profile upsert and the experience/education lists.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetAll returns every profile.
func (s *ProfileService) GetAll(ctx context.Context) ([]model.Profile, error) {
	return s.profileRepo.GetAll(ctx)
}

// GetByUserID returns the profile owned by the given user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// Upsert creates the user's profile, or updates only the supplied fields
// when one already exists. Status and skills are always supplied (the
// handler validates them), the rest merge over the stored row.
func (s *ProfileService) Upsert(ctx context.Context, userID int64, req *model.UpsertProfileRequest) (*model.Profile, error) {
	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, model.ErrProfileNotFound) {
		return nil, err
	}

	if existing == nil {
		profile := &model.Profile{
			UserID:         userID,
			Status:         req.Status,
			Skills:         pq.StringArray(req.Skills),
			Company:        req.Company,
			Website:        req.Website,
			Location:       req.Location,
			Bio:            req.Bio,
			GithubUsername: req.GithubUsername,
			Youtube:        req.Youtube,
			Facebook:       req.Facebook,
			Twitter:        req.Twitter,
			Instagram:      req.Instagram,
			Linkedin:       req.Linkedin,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		log.Printf("[ProfileService] Created profile for user %d", userID)
		return s.profileRepo.GetByUserID(ctx, userID)
	}

	existing.Status = req.Status
	if len(req.Skills) > 0 {
		existing.Skills = pq.StringArray(req.Skills)
	}
	if req.Company != nil {
		existing.Company = req.Company
	}
	if req.Website != nil {
		existing.Website = req.Website
	}
	if req.Location != nil {
		existing.Location = req.Location
	}
	if req.Bio != nil {
		existing.Bio = req.Bio
	}
	if req.GithubUsername != nil {
		existing.GithubUsername = req.GithubUsername
	}
	if req.Youtube != nil {
		existing.Youtube = req.Youtube
	}
	if req.Facebook != nil {
		existing.Facebook = req.Facebook
	}
	if req.Twitter != nil {
		existing.Twitter = req.Twitter
	}
	if req.Instagram != nil {
		existing.Instagram = req.Instagram
	}
	if req.Linkedin != nil {
		existing.Linkedin = req.Linkedin
	}

	if err := s.profileRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddExperience prepends a work-history entry to the user's profile and
// returns the refreshed profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID int64, req *model.AddExperienceRequest) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &model.Experience{
		ID:          uuid.New().String(),
		ProfileID:   profile.ID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		From:        req.From,
		To:          req.To,
		Current:     req.Current,
		Description: req.Description,
	}

	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteExperience removes an entry by identifier and returns the
// refreshed profile. An unknown id yields model.ErrExperienceNotFound.
func (s *ProfileService) DeleteExperience(ctx context.Context, userID int64, experienceID string) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.DeleteExperience(ctx, profile.ID, experienceID); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation prepends a schooling entry to the user's profile and
// returns the refreshed profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID int64, req *model.AddEducationRequest) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	edu := &model.Education{
		ID:           uuid.New().String(),
		ProfileID:    profile.ID,
		School:       req.School,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		From:         req.From,
		To:           req.To,
		Current:      req.Current,
		Description:  req.Description,
	}

	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteEducation removes an entry by identifier and returns the
// refreshed profile. An unknown id yields model.ErrEducationNotFound.
func (s *ProfileService) DeleteEducation(ctx context.Context, userID int64, educationID string) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.DeleteEducation(ctx, profile.ID, educationID); err != nil {
		return nil, err
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}
