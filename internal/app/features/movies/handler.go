// internal/app/features/movies/handler.go
package movies

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/reelhub/internal/app/store/movies"
	"github.com/dalemusser/reelhub/internal/app/store/users"
	"github.com/dalemusser/reelhub/internal/app/store/watched"
	"github.com/dalemusser/reelhub/internal/app/system/gates"
	"github.com/dalemusser/reelhub/internal/app/system/httpjson"
	"github.com/dalemusser/reelhub/internal/app/system/timeouts"
	"github.com/dalemusser/reelhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public catalog endpoints and the playback analytics
// ingest.
type Handler struct {
	Gate    *gates.Gate
	Movies  *moviestore.Store
	Users   *userstore.Store
	Watched *watchedstore.Store
	Log     *zap.Logger
}

// NewHandler constructs the catalog Handler.
func NewHandler(gate *gates.Gate, movies *moviestore.Store, users *userstore.Store, watched *watchedstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Gate:    gate,
		Movies:  movies,
		Users:   users,
		Watched: watched,
		Log:     logger,
	}
}

// HandleMovieList handles GET /api/movie/getMovieList: the three home-page
// rails in one response.
func (h *Handler) HandleMovieList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	year := time.Now().Year()

	newMovies, err := h.Movies.ListPublic(ctx, bson.M{"year": bson.M{"$gte": year}})
	if err != nil {
		httpjson.Internal(w, h.Log, "list new movies", err)
		return
	}
	bestMovies, err := h.Movies.ListPublic(ctx, bson.M{"rating": bson.M{"$gt": 7}})
	if err != nil {
		httpjson.Internal(w, h.Log, "list best movies", err)
		return
	}
	bestSeries, err := h.Movies.ListPublic(ctx, bson.M{"type": models.TypeSeries, "rating": bson.M{"$gt": 7}})
	if err != nil {
		httpjson.Internal(w, h.Log, "list best series", err)
		return
	}

	httpjson.OK(w, http.StatusOK, httpjson.M{
		"newMovieList":   newMovies,
		"bestMovieList":  bestMovies,
		"bestSeriesList": bestSeries,
	})
}

// HandleAllMovies handles GET /api/movie/getAllMovies.
func (h *Handler) HandleAllMovies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Movies.ListPublic(ctx, nil)
	if err != nil {
		httpjson.Internal(w, h.Log, "list all movies", err)
		return
	}
	httpjson.OK(w, http.StatusOK, httpjson.M{"movieList": list})
}

// HandleMoviesByGenre handles GET /api/movie/getMovieListByGenre?genre=.
func (h *Handler) HandleMoviesByGenre(w http.ResponseWriter, r *http.Request) {
	genre := strings.TrimSpace(r.URL.Query().Get("genre"))
	if genre == "" {
		httpjson.Fail(w, http.StatusOK, "Empty genre")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Movies.ListPublic(ctx, bson.M{"genre": genre})
	if err != nil {
		httpjson.Internal(w, h.Log, "list movies by genre", err)
		return
	}
	httpjson.OK(w, http.StatusOK, httpjson.M{"data": list})
}

// HandleMoviesByLanguage handles GET /api/movie/getMovieListByLanguage?language=.
func (h *Handler) HandleMoviesByLanguage(w http.ResponseWriter, r *http.Request) {
	language := strings.TrimSpace(r.URL.Query().Get("language"))
	if language == "" {
		httpjson.Fail(w, http.StatusOK, "Empty language")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Movies.ListPublic(ctx, bson.M{"language": language})
	if err != nil {
		httpjson.Internal(w, h.Log, "list movies by language", err)
		return
	}
	httpjson.OK(w, http.StatusOK, httpjson.M{"data": list})
}

// HandleMoviesBySearch handles GET /api/movie/getMovieListBySearch?keyword=.
func (h *Handler) HandleMoviesBySearch(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("keyword"))
	if keyword == "" {
		httpjson.Fail(w, http.StatusOK, "Empty keyword")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Movies.Search(ctx, keyword)
	if err != nil {
		httpjson.Internal(w, h.Log, "search movies", err)
		return
	}
	httpjson.OK(w, http.StatusOK, httpjson.M{"data": list})
}

// HandleAdminMovieList handles GET /api/movie/getMovieListAdmin: every
// catalog row with its watch count, media-complete or not.
func (h *Handler) HandleAdminMovieList(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Gate.RequireAdmin(w, r); !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Movies.ListAdmin(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "list admin movies", err)
		return
	}
	httpjson.OK(w, http.StatusOK, httpjson.M{"data": list})
}

// HandleFetchMovieData handles GET /api/movie/fetchMovieData?movieId=.
func (h *Handler) HandleFetchMovieData(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.fetchByQuery(w, r)
	if !ok {
		return
	}
	httpjson.OK(w, http.StatusOK, httpjson.M{"data": movie})
}

// HandleFetchMovieDataClient handles GET /api/movie/fetchMovieDataClient:
// the same lookup, but bound to a signed-in user.
func (h *Handler) HandleFetchMovieDataClient(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Gate.RequireUser(w, r); !ok {
		return
	}
	movie, ok := h.fetchByQuery(w, r)
	if !ok {
		return
	}
	httpjson.OK(w, http.StatusOK, httpjson.M{"data": movie})
}

func (h *Handler) fetchByQuery(w http.ResponseWriter, r *http.Request) (models.Movie, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get("movieId"))
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		httpjson.Fail(w, http.StatusOK, "Invalid movie")
		return models.Movie{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusOK, "Invalid movie")
			return models.Movie{}, false
		}
		httpjson.Internal(w, h.Log, "fetch movie", err)
		return models.Movie{}, false
	}
	return movie, true
}

type watchedRequest struct {
	MovieID  string `json:"movieId"`
	Token    string `json:"token"` // carries the raw user id, not a credential
	Duration int64  `json:"duration"`
	AdsCount int64  `json:"adsCount"`
}

// HandleCreateWatchedData handles POST /api/movie/createWatchedData: one
// append-only analytics row per playback.
func (h *Handler) HandleCreateWatchedData(w http.ResponseWriter, r *http.Request) {
	var req watchedRequest
	if err := httpjson.Decode(r, &req); err != nil ||
		req.MovieID == "" || req.Token == "" || req.Duration == 0 || req.AdsCount == 0 {
		httpjson.Fail(w, http.StatusBadRequest, "Missing data fields")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.FetchByID(ctx, req.Token); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusBadRequest, "Invalid access")
			return
		}
		httpjson.Internal(w, h.Log, "watched user lookup", err)
		return
	}

	movieID, err := primitive.ObjectIDFromHex(req.MovieID)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid movie")
		return
	}
	exists, err := h.Movies.Exists(ctx, movieID)
	if err != nil {
		httpjson.Internal(w, h.Log, "watched movie lookup", err)
		return
	}
	if !exists {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid movie")
		return
	}

	row, err := h.Watched.Append(ctx, models.Watched{
		UserID:     req.Token,
		MovieID:    req.MovieID,
		Duration:   req.Duration,
		AdsWatched: req.AdsCount,
	})
	if err != nil {
		httpjson.Internal(w, h.Log, "append watched row", err)
		return
	}

	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Watched document created.", "data": row})
}
