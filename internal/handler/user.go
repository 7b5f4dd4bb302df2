package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/mail"
	"strings"

	"devconnector/internal/httputil"
	"devconnector/internal/model"
	"devconnector/internal/service"
	"devconnector/internal/transport/http/middleware"
)

// UserHandler groups registration and account-deletion endpoints.
type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register handles POST /api/users
// Creates an account and returns a session token.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var msgs []string
	if strings.TrimSpace(req.Name) == "" {
		msgs = append(msgs, "Name is required")
	}
	if !validEmail(req.Email) {
		msgs = append(msgs, "Please enter a valid email")
	}
	if len(req.Password) < model.MinPasswordLength {
		msgs = append(msgs, "Please enter a password with 6 or more characters")
	}
	if len(msgs) > 0 {
		httputil.WriteErrors(w, msgs)
		return
	}

	token, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, model.ErrEmailExists) {
			httputil.WriteErrors(w, []string{"User already exists"})
			return
		}
		log.Printf("[ERROR] Register handler: err=%v", err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// DeleteAccount handles DELETE /api/users
// Removes the authenticated user together with their profile and posts.
func (h *UserHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	if err := h.userService.DeleteAccount(r.Context(), userID); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			httputil.WriteNotFound(w, "User not found")
			return
		}
		log.Printf("[ERROR] Delete account handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.MsgResponse{Msg: "User deleted"})
}

// validEmail checks the address shape without any deliverability claim.
func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
