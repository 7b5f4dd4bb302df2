package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"devconnector/internal/httputil"
	"devconnector/internal/model"
	"devconnector/internal/service"
	"devconnector/internal/transport/http/middleware"
)

// AuthHandler groups login and current-user endpoints.
type AuthHandler struct {
	userService *service.UserService
}

func NewAuthHandler(userService *service.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Login handles POST /api/auth
// Returns a session token. Unknown email and wrong password produce the
// exact same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if !validEmail(req.Email) {
		msgs = append(msgs, "Email is required")
	}
	if req.Password == "" {
		msgs = append(msgs, "Password is required")
	}
	if len(msgs) > 0 {
		httputil.WriteErrors(w, msgs)
		return
	}

	token, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			httputil.WriteJSON(w, http.StatusUnauthorized, httputil.ErrorsResponse{
				Errors: []httputil.FieldError{{Msg: "Invalid credentials"}},
			})
			return
		}
		log.Printf("[ERROR] Login handler: err=%v", err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// Me handles GET /api/auth
// Returns the authenticated user's record minus the password hash.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Me handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}
