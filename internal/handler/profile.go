package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"devconnector/internal/httputil"
	"devconnector/internal/model"
	"devconnector/internal/service"
	"devconnector/internal/transport/http/middleware"
)

// ProfileHandler groups profile, experience/education and GitHub endpoints.
type ProfileHandler struct {
	profileService *service.ProfileService
	userService    *service.UserService
	githubService  *service.GithubService
}

func NewProfileHandler(profileService *service.ProfileService, userService *service.UserService, githubService *service.GithubService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		userService:    userService,
		githubService:  githubService,
	}
}

// GetAll handles GET /api/profile
func (h *ProfileHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profileService.GetAll(r.Context())
	if err != nil {
		log.Printf("[ERROR] List profiles handler: err=%v", err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profiles)
}

// GetMe handles GET /api/profile/me
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	profile, err := h.profileService.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			httputil.WriteNotFound(w, "There is no profile for this user")
			return
		}
		log.Printf("[ERROR] Get own profile handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// GetByUserID handles GET /api/profile/user/{user_id}
// A malformed id is indistinguishable from an unknown one: both are 404.
func (h *ProfileHandler) GetByUserID(w http.ResponseWriter, r *http.Request) {
	userIDStr := chi.URLParam(r, "user_id")
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		httputil.WriteNotFound(w, "Profile not found")
		return
	}

	profile, err := h.profileService.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			httputil.WriteNotFound(w, "Profile not found")
			return
		}
		log.Printf("[ERROR] Get profile handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// Upsert handles POST /api/profile
// Creates the profile on first submit, afterwards replaces only the
// supplied fields.
func (h *ProfileHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.UpsertProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if strings.TrimSpace(req.Status) == "" {
		msgs = append(msgs, "Status is required")
	}
	if len(req.Skills) == 0 {
		msgs = append(msgs, "Skills is required")
	}
	if len(msgs) > 0 {
		httputil.WriteErrors(w, msgs)
		return
	}

	profile, err := h.profileService.Upsert(r.Context(), userID, &req)
	if err != nil {
		log.Printf("[ERROR] Upsert profile handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// Delete handles DELETE /api/profile
// Removes profile and user (and the user's posts) in one go.
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), userID); err != nil {
		log.Printf("[ERROR] Delete profile handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.MsgResponse{Msg: "User deleted"})
}

// AddExperience handles PUT/POST /api/profile/experience
func (h *ProfileHandler) AddExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.AddExperienceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if strings.TrimSpace(req.Title) == "" {
		msgs = append(msgs, "Title is required")
	}
	if strings.TrimSpace(req.Company) == "" {
		msgs = append(msgs, "Company is required")
	}
	if strings.TrimSpace(req.From) == "" {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		httputil.WriteErrors(w, msgs)
		return
	}

	profile, err := h.profileService.AddExperience(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			httputil.WriteNotFound(w, "There is no profile for this user")
			return
		}
		log.Printf("[ERROR] Add experience handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// DeleteExperience handles DELETE /api/profile/experience/{exp_id}
func (h *ProfileHandler) DeleteExperience(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	expID := chi.URLParam(r, "exp_id")

	profile, err := h.profileService.DeleteExperience(r.Context(), userID, expID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrProfileNotFound):
			httputil.WriteNotFound(w, "There is no profile for this user")
		case errors.Is(err, model.ErrExperienceNotFound):
			httputil.WriteNotFound(w, "Experience not found")
		default:
			log.Printf("[ERROR] Delete experience handler: user=%d exp=%s err=%v", userID, expID, err)
			httputil.WriteInternalError(w)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// AddEducation handles PUT/POST /api/profile/education
func (h *ProfileHandler) AddEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.AddEducationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if strings.TrimSpace(req.School) == "" {
		msgs = append(msgs, "School is required")
	}
	if strings.TrimSpace(req.Degree) == "" {
		msgs = append(msgs, "Degree is required")
	}
	if strings.TrimSpace(req.FieldOfStudy) == "" {
		msgs = append(msgs, "Field of study is required")
	}
	if strings.TrimSpace(req.From) == "" {
		msgs = append(msgs, "From date is required")
	}
	if len(msgs) > 0 {
		httputil.WriteErrors(w, msgs)
		return
	}

	profile, err := h.profileService.AddEducation(r.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			httputil.WriteNotFound(w, "There is no profile for this user")
			return
		}
		log.Printf("[ERROR] Add education handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// DeleteEducation handles DELETE /api/profile/education/{edu_id}
func (h *ProfileHandler) DeleteEducation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	eduID := chi.URLParam(r, "edu_id")

	profile, err := h.profileService.DeleteEducation(r.Context(), userID, eduID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrProfileNotFound):
			httputil.WriteNotFound(w, "There is no profile for this user")
		case errors.Is(err, model.ErrEducationNotFound):
			httputil.WriteNotFound(w, "Education not found")
		default:
			log.Printf("[ERROR] Delete education handler: user=%d edu=%s err=%v", userID, eduID, err)
			httputil.WriteInternalError(w)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, profile)
}

// GetGithubRepos handles GET /api/profile/github/{username}
func (h *ProfileHandler) GetGithubRepos(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	repos, err := h.githubService.GetRepos(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrGithubUserNotFound) {
			httputil.WriteNotFound(w, "No Github profile found")
			return
		}
		log.Printf("[ERROR] Github repos handler: username=%s err=%v", username, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, repos)
}
