package model

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
)

// Profile is a user's developer profile. At most one exists per user.
// The social link columns live flat in the profiles table and are folded
// into the Social sub-record for JSON output.
type Profile struct {
	ID             int64          `db:"id" json:"id"`
	UserID         int64          `db:"user_id" json:"user"`
	Company        *string        `db:"company" json:"company,omitempty"`
	Website        *string        `db:"website" json:"website,omitempty"`
	Location       *string        `db:"location" json:"location,omitempty"`
	Status         string         `db:"status" json:"status"`
	Skills         pq.StringArray `db:"skills" json:"skills"`
	Bio            *string        `db:"bio" json:"bio,omitempty"`
	GithubUsername *string        `db:"github_username" json:"githubUsername,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"date"`
	UpdatedAt      time.Time      `db:"updated_at" json:"-"`

	Youtube   *string `db:"youtube" json:"-"`
	Facebook  *string `db:"facebook" json:"-"`
	Twitter   *string `db:"twitter" json:"-"`
	Instagram *string `db:"instagram" json:"-"`
	Linkedin  *string `db:"linkedin" json:"-"`

	Social *SocialLinks `json:"social,omitempty"`

	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// SocialLinks is the optional social sub-record of a profile.
type SocialLinks struct {
	Youtube   *string `json:"youtube,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Twitter   *string `json:"twitter,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	Linkedin  *string `json:"linkedin,omitempty"`
}

// BuildSocial folds the flat link columns into the Social sub-record,
// leaving it nil when no link is set.
func (p *Profile) BuildSocial() {
	if p.Youtube == nil && p.Facebook == nil && p.Twitter == nil && p.Instagram == nil && p.Linkedin == nil {
		p.Social = nil
		return
	}
	p.Social = &SocialLinks{
		Youtube:   p.Youtube,
		Facebook:  p.Facebook,
		Twitter:   p.Twitter,
		Instagram: p.Instagram,
		Linkedin:  p.Linkedin,
	}
}

// Experience is a work-history entry, newest first in the profile.
type Experience struct {
	ID          string    `db:"id" json:"id"`
	ProfileID   int64     `db:"profile_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Company     string    `db:"company" json:"company"`
	Location    *string   `db:"location" json:"location,omitempty"`
	From        string    `db:"from_date" json:"from"`
	To          *string   `db:"to_date" json:"to,omitempty"`
	Current     bool      `db:"current" json:"current"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}

// Education is a schooling entry, newest first in the profile.
type Education struct {
	ID           string    `db:"id" json:"id"`
	ProfileID    int64     `db:"profile_id" json:"-"`
	School       string    `db:"school" json:"school"`
	Degree       string    `db:"degree" json:"degree"`
	FieldOfStudy string    `db:"field_of_study" json:"fieldofstudy"`
	From         string    `db:"from_date" json:"from"`
	To           *string   `db:"to_date" json:"to,omitempty"`
	Current      bool      `db:"current" json:"current"`
	Description  *string   `db:"description" json:"description,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// SkillsList accepts either a JSON array of strings or a single
// comma-separated string ("html, css,js"), trimming each entry.
type SkillsList []string

func (s *SkillsList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*s = out
	return nil
}

// UpsertProfileRequest carries the profile-submit body. Only supplied
// fields replace existing values on update.
type UpsertProfileRequest struct {
	Company        *string    `json:"company"`
	Website        *string    `json:"website"`
	Location       *string    `json:"location"`
	Bio            *string    `json:"bio"`
	Status         string     `json:"status"`
	GithubUsername *string    `json:"githubUsername"`
	Skills         SkillsList `json:"skills"`

	Youtube   *string `json:"youtube"`
	Facebook  *string `json:"facebook"`
	Twitter   *string `json:"twitter"`
	Instagram *string `json:"instagram"`
	Linkedin  *string `json:"linkedin"`
}

// AddExperienceRequest is the body for adding an experience entry.
type AddExperienceRequest struct {
	Title       string  `json:"title"`
	Company     string  `json:"company"`
	Location    *string `json:"location"`
	From        string  `json:"from"`
	To          *string `json:"to"`
	Current     bool    `json:"current"`
	Description *string `json:"description"`
}

// AddEducationRequest is the body for adding an education entry.
type AddEducationRequest struct {
	School       string  `json:"school"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"fieldofstudy"`
	From         string  `json:"from"`
	To           *string `json:"to"`
	Current      bool    `json:"current"`
	Description  *string `json:"description"`
}

var (
	// ErrProfileNotFound is returned when a user has no profile
	ErrProfileNotFound = errors.New("profile not found")

	// ErrExperienceNotFound is returned when an experience id does not resolve
	ErrExperienceNotFound = errors.New("experience not found")

	// ErrEducationNotFound is returned when an education id does not resolve
	ErrEducationNotFound = errors.New("education not found")
)
