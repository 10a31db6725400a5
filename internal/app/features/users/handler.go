// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/reelhub/internal/app/store/users"
	"github.com/dalemusser/reelhub/internal/app/store/watched"
	"github.com/dalemusser/reelhub/internal/app/system/auth"
	"github.com/dalemusser/reelhub/internal/app/system/gates"
	"github.com/dalemusser/reelhub/internal/app/system/httpjson"
	"github.com/dalemusser/reelhub/internal/app/system/timeouts"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the user-bound watch history endpoints.
type Handler struct {
	Gate    *gates.Gate
	Tokens  *auth.Tokens
	Users   *userstore.Store
	Watched *watchedstore.Store
	Log     *zap.Logger
}

// NewHandler constructs the users Handler.
func NewHandler(gate *gates.Gate, tokens *auth.Tokens, users *userstore.Store, watched *watchedstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Gate:    gate,
		Tokens:  tokens,
		Users:   users,
		Watched: watched,
		Log:     logger,
	}
}

// HandleWatchHistory handles GET /api/user/getWatchHistory.
func (h *Handler) HandleWatchHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.Gate.RequireUser(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	history, err := h.Watched.History(ctx, userID)
	if err != nil {
		httpjson.Internal(w, h.Log, "watch history", err)
		return
	}

	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Watch history retireved", "data": history})
}

type updateWatchedRequest struct {
	Token    string `json:"token"` // bearer credential, sent in the body
	MovieID  string `json:"movieId"`
	Duration int64  `json:"duration"`
}

// HandleUpdateMovieWatched handles POST /api/user/updateMovieWatched: the
// resume checkpoint upsert. The credential arrives in the body rather than
// the Authorization header.
func (h *Handler) HandleUpdateMovieWatched(w http.ResponseWriter, r *http.Request) {
	var req updateWatchedRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid movie")
		return
	}
	if req.Token == "" {
		httpjson.Fail(w, http.StatusForbidden, "Unauthorised Access !")
		return
	}
	if strings.TrimSpace(req.MovieID) == "" || req.Duration == 0 {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid movie")
		return
	}

	claims, err := h.Tokens.Verify(req.Token)
	if err != nil || claims.UserID == "" {
		httpjson.Fail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.FetchByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusBadRequest, "Invalid Access")
			return
		}
		httpjson.Internal(w, h.Log, "update watched user lookup", err)
		return
	}

	if err := h.Watched.UpsertProgress(ctx, claims.UserID, req.MovieID, req.Duration); err != nil {
		httpjson.Internal(w, h.Log, "upsert watch progress", err)
		return
	}

	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Watch History Updated"})
}
