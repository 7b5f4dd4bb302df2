package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"devconnector/internal/model"
)

// mockProfileRepository keeps a single profile in memory, enough to observe
// upsert and entry semantics.
type mockProfileRepository struct {
	profile     *model.Profile
	experiences []model.Experience
	educations  []model.Education

	createCalls int
	updateCalls int
}

func (m *mockProfileRepository) GetAll(ctx context.Context) ([]model.Profile, error) {
	if m.profile == nil {
		return []model.Profile{}, nil
	}
	return []model.Profile{*m.profile}, nil
}

func (m *mockProfileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	if m.profile == nil || m.profile.UserID != userID {
		return nil, model.ErrProfileNotFound
	}
	// Return a copy with entries attached, newest first, like the real repo.
	p := *m.profile
	p.Experience = append([]model.Experience{}, m.experiences...)
	p.Education = append([]model.Education{}, m.educations...)
	p.BuildSocial()
	return &p, nil
}

func (m *mockProfileRepository) Create(ctx context.Context, profile *model.Profile) error {
	m.createCalls++
	profile.ID = 1
	m.profile = profile
	return nil
}

func (m *mockProfileRepository) Update(ctx context.Context, profile *model.Profile) error {
	m.updateCalls++
	if m.profile == nil || m.profile.UserID != profile.UserID {
		return model.ErrProfileNotFound
	}
	m.profile = profile
	return nil
}

func (m *mockProfileRepository) DeleteByUserID(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	m.profile = nil
	return nil
}

func (m *mockProfileRepository) AddExperience(ctx context.Context, exp *model.Experience) error {
	m.experiences = append([]model.Experience{*exp}, m.experiences...)
	return nil
}

func (m *mockProfileRepository) DeleteExperience(ctx context.Context, profileID int64, experienceID string) error {
	for i, e := range m.experiences {
		if e.ID == experienceID {
			m.experiences = append(m.experiences[:i], m.experiences[i+1:]...)
			return nil
		}
	}
	return model.ErrExperienceNotFound
}

func (m *mockProfileRepository) AddEducation(ctx context.Context, edu *model.Education) error {
	m.educations = append([]model.Education{*edu}, m.educations...)
	return nil
}

func (m *mockProfileRepository) DeleteEducation(ctx context.Context, profileID int64, educationID string) error {
	for i, e := range m.educations {
		if e.ID == educationID {
			m.educations = append(m.educations[:i], m.educations[i+1:]...)
			return nil
		}
	}
	return model.ErrEducationNotFound
}

func strPtr(s string) *string { return &s }

func TestProfileService_Upsert_CreatesWhenAbsent(t *testing.T) {
	repo := &mockProfileRepository{}
	svc := NewProfileService(repo)

	profile, err := svc.Upsert(context.Background(), 5, &model.UpsertProfileRequest{
		Status:  "Developer",
		Skills:  model.SkillsList{"Go", "SQL"},
		Company: strPtr("Acme"),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if repo.createCalls != 1 {
		t.Fatalf("Create called %d times, want 1", repo.createCalls)
	}
	if profile.Status != "Developer" {
		t.Errorf("status = %q, want Developer", profile.Status)
	}
	if len(profile.Skills) != 2 || profile.Skills[0] != "Go" {
		t.Errorf("skills = %v, want ordered [Go SQL]", profile.Skills)
	}
	if profile.Company == nil || *profile.Company != "Acme" {
		t.Errorf("company = %v, want Acme", profile.Company)
	}
}

func TestProfileService_Upsert_PartialUpdate(t *testing.T) {
	repo := &mockProfileRepository{
		profile: &model.Profile{
			ID:       1,
			UserID:   5,
			Status:   "Developer",
			Skills:   pq.StringArray{"Go"},
			Company:  strPtr("Acme"),
			Location: strPtr("Berlin"),
			Youtube:  strPtr("https://youtube.com/acme"),
		},
	}
	svc := NewProfileService(repo)

	// Supply only status and a new location; everything else must survive.
	profile, err := svc.Upsert(context.Background(), 5, &model.UpsertProfileRequest{
		Status:   "Senior Developer",
		Skills:   model.SkillsList{"Go"},
		Location: strPtr("Munich"),
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if repo.createCalls != 0 {
		t.Errorf("Create called %d times, want 0 on update", repo.createCalls)
	}
	if repo.updateCalls != 1 {
		t.Errorf("Update called %d times, want 1", repo.updateCalls)
	}

	if profile.Status != "Senior Developer" {
		t.Errorf("status = %q, want the supplied value", profile.Status)
	}
	if profile.Location == nil || *profile.Location != "Munich" {
		t.Errorf("location = %v, want Munich", profile.Location)
	}
	if profile.Company == nil || *profile.Company != "Acme" {
		t.Errorf("company = %v, want unchanged Acme", profile.Company)
	}
	if profile.Social == nil || profile.Social.Youtube == nil || *profile.Social.Youtube != "https://youtube.com/acme" {
		t.Errorf("social = %+v, want unchanged youtube link", profile.Social)
	}
}

func TestProfileService_AddExperience_PrependsWithID(t *testing.T) {
	repo := &mockProfileRepository{
		profile: &model.Profile{ID: 1, UserID: 5, Status: "Developer"},
	}
	svc := NewProfileService(repo)

	_, err := svc.AddExperience(context.Background(), 5, &model.AddExperienceRequest{
		Title:   "Engineer",
		Company: "Acme",
		From:    "2019-01-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	profile, err := svc.AddExperience(context.Background(), 5, &model.AddExperienceRequest{
		Title:   "Senior Engineer",
		Company: "Acme",
		From:    "2022-01-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(profile.Experience) != 2 {
		t.Fatalf("experience entries = %d, want 2", len(profile.Experience))
	}
	// Most recent entry first.
	if profile.Experience[0].Title != "Senior Engineer" {
		t.Errorf("first entry = %q, want the newest", profile.Experience[0].Title)
	}
	if profile.Experience[0].ID == "" || profile.Experience[1].ID == "" {
		t.Error("entries should carry generated identifiers")
	}
	if profile.Experience[0].ID == profile.Experience[1].ID {
		t.Error("entry identifiers must be unique")
	}
}

func TestProfileService_DeleteExperience(t *testing.T) {
	repo := &mockProfileRepository{
		profile: &model.Profile{ID: 1, UserID: 5, Status: "Developer"},
	}
	svc := NewProfileService(repo)

	profile, err := svc.AddExperience(context.Background(), 5, &model.AddExperienceRequest{
		Title: "Engineer", Company: "Acme", From: "2019-01-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	expID := profile.Experience[0].ID

	profile, err = svc.DeleteExperience(context.Background(), 5, expID)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(profile.Experience) != 0 {
		t.Errorf("experience entries = %d, want 0 after delete", len(profile.Experience))
	}

	if _, err := svc.DeleteExperience(context.Background(), 5, "no-such-id"); !errors.Is(err, model.ErrExperienceNotFound) {
		t.Errorf("expected ErrExperienceNotFound, got: %v", err)
	}
}

func TestProfileService_AddEducation_PrependsWithID(t *testing.T) {
	repo := &mockProfileRepository{
		profile: &model.Profile{ID: 1, UserID: 5, Status: "Developer"},
	}
	svc := NewProfileService(repo)

	_, err := svc.AddEducation(context.Background(), 5, &model.AddEducationRequest{
		School:       "MIT",
		Degree:       "BSc",
		FieldOfStudy: "CS",
		From:         "2015-09-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	profile, err := svc.AddEducation(context.Background(), 5, &model.AddEducationRequest{
		School:       "MIT",
		Degree:       "MSc",
		FieldOfStudy: "Distributed Systems",
		From:         "2019-09-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if len(profile.Education) != 2 {
		t.Fatalf("education entries = %d, want 2", len(profile.Education))
	}
	// Most recent entry first.
	if profile.Education[0].Degree != "MSc" {
		t.Errorf("first entry = %q, want the newest", profile.Education[0].Degree)
	}
	if profile.Education[0].FieldOfStudy != "Distributed Systems" {
		t.Errorf("field of study = %q, want Distributed Systems", profile.Education[0].FieldOfStudy)
	}
	if profile.Education[0].ID == "" || profile.Education[1].ID == "" {
		t.Error("entries should carry generated identifiers")
	}
	if profile.Education[0].ID == profile.Education[1].ID {
		t.Error("entry identifiers must be unique")
	}
}

func TestProfileService_DeleteEducation(t *testing.T) {
	repo := &mockProfileRepository{
		profile: &model.Profile{ID: 1, UserID: 5, Status: "Developer"},
	}
	svc := NewProfileService(repo)

	profile, err := svc.AddEducation(context.Background(), 5, &model.AddEducationRequest{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01",
	})
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	eduID := profile.Education[0].ID

	profile, err = svc.DeleteEducation(context.Background(), 5, eduID)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(profile.Education) != 0 {
		t.Errorf("education entries = %d, want 0 after delete", len(profile.Education))
	}

	if _, err := svc.DeleteEducation(context.Background(), 5, "no-such-id"); !errors.Is(err, model.ErrEducationNotFound) {
		t.Errorf("expected ErrEducationNotFound, got: %v", err)
	}
}

func TestProfileService_NoProfileForUser(t *testing.T) {
	svc := NewProfileService(&mockProfileRepository{})

	if _, err := svc.GetByUserID(context.Background(), 5); !errors.Is(err, model.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got: %v", err)
	}
	_, err := svc.AddEducation(context.Background(), 5, &model.AddEducationRequest{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: "2015-09-01",
	})
	if !errors.Is(err, model.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got: %v", err)
	}
}
