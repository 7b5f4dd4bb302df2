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

// PostHandler groups the feed, like and comment endpoints.
type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// GetAll handles GET /api/posts
// Returns every post, newest first.
func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.GetAll(r.Context())
	if err != nil {
		log.Printf("[ERROR] List posts handler: err=%v", err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetByID handles GET /api/posts/{post_id}
// A malformed id is indistinguishable from an unknown one: both are 404.
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Get post handler: post=%d err=%v", postID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Create handles POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	var req model.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		httputil.WriteErrors(w, []string{"Text is required"})
		return
	}

	post, err := h.postService.Create(r.Context(), userID, req)
	if err != nil {
		log.Printf("[ERROR] Create post handler: user=%d err=%v", userID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{post_id}
// Only the owner may delete a post.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	err := h.postService.Delete(r.Context(), postID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteUnauthorized(w, "User not authorized")
		default:
			log.Printf("[ERROR] Delete post handler: user=%d post=%d err=%v", userID, postID, err)
			httputil.WriteInternalError(w)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.MsgResponse{Msg: "Post removed"})
}

// ToggleLike handles PUT /api/posts/like/{post_id}
// Likes the post if the user has not liked it, removes the like otherwise.
// Responds with the updated likes list either way.
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	likes, err := h.postService.ToggleLike(r.Context(), postID, userID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Toggle like handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, likes)
}

// AddComment handles POST /api/posts/comment/{post_id}
// Responds with the post's updated comment list.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteMsg(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		httputil.WriteErrors(w, []string{"Text is required"})
		return
	}

	comments, err := h.postService.AddComment(r.Context(), postID, userID, req)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			httputil.WriteNotFound(w, "Post not found")
			return
		}
		log.Printf("[ERROR] Add comment handler: user=%d post=%d err=%v", userID, postID, err)
		httputil.WriteInternalError(w)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// DeleteComment handles DELETE /api/posts/comment/{post_id}/{comment_id}
// Only the comment's author may delete it.
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Not authenticated")
		return
	}

	postID, ok := parsePostID(w, r)
	if !ok {
		return
	}

	commentID := chi.URLParam(r, "comment_id")

	comments, err := h.postService.DeleteComment(r.Context(), postID, commentID, userID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment does not exist")
		case errors.Is(err, model.ErrNotCommentAuthor):
			httputil.WriteUnauthorized(w, "User not authorized")
		default:
			log.Printf("[ERROR] Delete comment handler: user=%d post=%d comment=%s err=%v", userID, postID, commentID, err)
			httputil.WriteInternalError(w)
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}

// parsePostID reads the post_id path parameter, writing the 404 itself on a
// malformed id.
func parsePostID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "post_id"), 10, 64)
	if err != nil {
		httputil.WriteNotFound(w, "Post not found")
		return 0, false
	}
	return postID, true
}
