// internal/app/features/admin/movies.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/reelhub/internal/app/media/s3store"
	"github.com/dalemusser/reelhub/internal/app/store/movies"
	"github.com/dalemusser/reelhub/internal/app/system/gates"
	"github.com/dalemusser/reelhub/internal/app/system/httpjson"
	"github.com/dalemusser/reelhub/internal/app/system/inputval"
	"github.com/dalemusser/reelhub/internal/app/system/normalize"
	"github.com/dalemusser/reelhub/internal/app/system/timeouts"
	"github.com/dalemusser/reelhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Rating bounds differ between create and update; both ends of the client
// depend on it, so it stays.
const (
	createRatingMax = 10
	updateRatingMax = 5
)

type addMovieRequest struct {
	Title     string   `json:"title"`
	Bio       string   `json:"bio"`
	Year      int      `json:"year"`
	Genre     []string `json:"genre"`
	Rating    *float64 `json:"rating"`
	Director  string   `json:"director"`
	Language  []string `json:"language"`
	Cast      string   `json:"cast"`
	Image     string   `json:"image"` // content type of the artwork upload
	MediaSize int64    `json:"mediaSize"`
}

// HandleAddMovie handles POST /api/admin/addMovie: validates and inserts
// the catalog row, then hands back upload credentials for the artwork
// (object storage) and the video (CDN). Media URLs stay empty until the
// client reports the finished uploads through recordMedia.
func (h *Handler) HandleAddMovie(w http.ResponseWriter, r *http.Request) {
	var req addMovieRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Missing fields!")
		return
	}
	if req.Title == "" || req.Bio == "" || req.Year == 0 || len(req.Genre) == 0 ||
		req.Rating == nil || req.Director == "" || len(req.Language) == 0 ||
		req.Cast == "" || req.Image == "" || req.MediaSize == 0 {
		httpjson.Fail(w, http.StatusBadRequest, "Missing fields!")
		return
	}

	if !inputval.ValidMovieYear(req.Year, time.Now()) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid movie release year")
		return
	}
	rating, err := inputval.ParseRating(*req.Rating, createRatingMax)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid rating!")
		return
	}
	if !s3store.AllowedContentType(req.Image) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	title := normalize.Title(req.Title)
	director := normalize.Director(req.Director)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	exists, err := h.Movies.ExistsByKey(ctx, title, req.Year, director)
	if err != nil {
		httpjson.Internal(w, h.Log, "movie exists check", err)
		return
	}
	if exists {
		httpjson.Fail(w, http.StatusConflict, "Movie already exists!")
		return
	}

	empID, _ := gates.EmpID(r)
	movie, err := h.Movies.Create(ctx, models.Movie{
		Title:     title,
		Bio:       normalize.FreeText(req.Bio),
		Year:      req.Year,
		Genre:     req.Genre,
		Language:  req.Language,
		Cast:      inputval.SplitCast(req.Cast),
		Director:  director,
		Rating:    rating,
		MediaSize: req.MediaSize,
		UpBy:      empID,
	})
	if err != nil {
		if errors.Is(err, moviestore.ErrDuplicate) {
			httpjson.Fail(w, http.StatusConflict, "Movie already exists!")
			return
		}
		httpjson.Internal(w, h.Log, "create movie", err)
		return
	}

	imgCred, err := h.S3.UploadURL(ctx, req.Image, movie.ID.Hex())
	if err != nil {
		httpjson.Internal(w, h.Log, "presign image upload", err)
		return
	}
	videoCred, err := h.CDN.SignUpload(movie.ID.Hex())
	if err != nil {
		httpjson.Internal(w, h.Log, "sign video upload", err)
		return
	}

	h.notifyAdmins("movie_added", httpjson.M{"movieId": movie.ID.Hex(), "title": movie.Title})
	httpjson.OK(w, http.StatusCreated, httpjson.M{
		"message":         "Movie added successfully",
		"movieData":       movie,
		"imgUploadCred":   imgCred,
		"videoUploadCred": videoCred,
	})
}

type updateMovieRequest struct {
	MovieID  string   `json:"movieId"`
	Title    string   `json:"title"`
	Bio      string   `json:"bio"`
	Year     int      `json:"year"`
	Genre    []string `json:"genre"`
	Rating   *float64 `json:"rating"`
	Director string   `json:"director"`
	Language []string `json:"language"`
	Cast     string   `json:"cast"`
}

// HandleUpdateMovieData handles POST /api/admin/updateMovieData: a full
// replace of the mutable catalog fields. Media is updated separately.
func (h *Handler) HandleUpdateMovieData(w http.ResponseWriter, r *http.Request) {
	var req updateMovieRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Missing fields!")
		return
	}
	if req.MovieID == "" || req.Title == "" || req.Bio == "" || req.Year == 0 ||
		len(req.Genre) == 0 || req.Rating == nil || req.Director == "" ||
		len(req.Language) == 0 || req.Cast == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Missing fields!")
		return
	}

	if !inputval.ValidMovieYear(req.Year, time.Now()) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid movie release year")
		return
	}
	rating, err := inputval.ParseRating(*req.Rating, updateRatingMax)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid rating!")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.MovieID)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Movie don't exists!")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	movie, err := h.Movies.UpdateData(ctx, id, bson.M{
		"title":    normalize.Title(req.Title),
		"bio":      normalize.FreeText(req.Bio),
		"year":     req.Year,
		"genre":    req.Genre,
		"language": req.Language,
		"cast":     inputval.SplitCast(req.Cast),
		"director": normalize.Director(req.Director),
		"rating":   rating,
	})
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Fail(w, http.StatusBadRequest, "Movie doesn't exists!")
		case errors.Is(err, moviestore.ErrDuplicate):
			httpjson.Fail(w, http.StatusConflict, "Movie already exists!")
		default:
			httpjson.Internal(w, h.Log, "update movie", err)
		}
		return
	}

	h.notifyAdmins("movie_updated", httpjson.M{"movieId": movie.ID.Hex(), "title": movie.Title})
	httpjson.OK(w, http.StatusOK, httpjson.M{"data": movie})
}

type updateMediaRequest struct {
	MovieID string `json:"movieId"`
	Image   string `json:"image"` // content type; empty skips the artwork credential
	Video   bool   `json:"video"`
}

// HandleUpdateMovieMedia handles POST /api/admin/updateMovieMedia:
// re-issues upload credentials for the artwork, the video, or both.
func (h *Handler) HandleUpdateMovieMedia(w http.ResponseWriter, r *http.Request) {
	var req updateMediaRequest
	if err := httpjson.Decode(r, &req); err != nil || req.MovieID == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Data not given !")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	resp := httpjson.M{"message": "Upload credentials issued"}

	if req.Image != "" {
		cred, err := h.S3.UploadURL(ctx, req.Image, req.MovieID)
		if err != nil {
			if errors.Is(err, s3store.ErrUnsupportedType) {
				httpjson.Fail(w, http.StatusBadRequest, "Invalid file type")
				return
			}
			httpjson.Internal(w, h.Log, "presign image upload", err)
			return
		}
		resp["imgUploadCred"] = cred
	}
	if req.Video {
		cred, err := h.CDN.SignUpload(req.MovieID)
		if err != nil {
			httpjson.Internal(w, h.Log, "sign video upload", err)
			return
		}
		resp["videoUploadCred"] = cred
	}

	httpjson.OK(w, http.StatusCreated, resp)
}

type recordMediaRequest struct {
	MovieID  string  `json:"movieId"`
	ImgURL   string  `json:"imgURL"`
	VideoURL string  `json:"videoURL"`
	Duration float64 `json:"duration"` // seconds, stored as milliseconds
}

// HandleRecordMedia handles POST /api/admin/recordMedia: the client
// reports the finished direct uploads and the playback duration.
func (h *Handler) HandleRecordMedia(w http.ResponseWriter, r *http.Request) {
	var req recordMediaRequest
	if err := httpjson.Decode(r, &req); err != nil ||
		req.MovieID == "" || req.ImgURL == "" || req.VideoURL == "" || req.Duration == 0 {
		httpjson.Fail(w, http.StatusBadRequest, "Missing fields!")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.MovieID)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Movie doesn't exists!")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matched, err := h.Movies.RecordMedia(ctx, id, req.ImgURL, req.VideoURL,
		time.Duration(req.Duration*float64(time.Second)))
	if err != nil {
		httpjson.Internal(w, h.Log, "record media", err)
		return
	}
	if !matched {
		httpjson.Fail(w, http.StatusBadRequest, "Movie doesn't exists!")
		return
	}

	h.notifyAdmins("movie_media_recorded", httpjson.M{"movieId": req.MovieID})
	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Media recorded successfully!"})
}

type recordUpdatedMediaRequest struct {
	MovieID  string `json:"movieId"`
	ImgURL   string `json:"imgURL"`
	VideoURL string `json:"videoURL"`
}

// HandleRecordUpdatedMedia handles POST /api/admin/recordUpdatedMedia:
// partial URL update after a re-upload replaced the artwork, the video,
// or both.
func (h *Handler) HandleRecordUpdatedMedia(w http.ResponseWriter, r *http.Request) {
	var req recordUpdatedMediaRequest
	if err := httpjson.Decode(r, &req); err != nil || req.MovieID == "" ||
		(req.ImgURL == "" && req.VideoURL == "") {
		httpjson.Fail(w, http.StatusBadRequest, "Missing fields!")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.MovieID)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Movie doesn't exists!")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matched, err := h.Movies.RecordPartialMedia(ctx, id, req.ImgURL, req.VideoURL)
	if err != nil {
		httpjson.Internal(w, h.Log, "record updated media", err)
		return
	}
	if !matched {
		httpjson.Fail(w, http.StatusBadRequest, "Movie doesn't exists!")
		return
	}

	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Media recorded successfully!"})
}

type deleteMovieRequest struct {
	MovieID string `json:"movieId"`
}

// HandleDeleteMovie handles POST /api/admin/deleteMovie. Media is removed
// before the row: artwork first, then the video. If either external delete
// fails the catalog row stays so the operation can be retried; both
// backends treat re-deleting absent media as success.
func (h *Handler) HandleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	var req deleteMovieRequest
	if err := httpjson.Decode(r, &req); err != nil || req.MovieID == "" {
		httpjson.Fail(w, http.StatusOK, "Invalid data !")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.MovieID)
	if err != nil {
		httpjson.Fail(w, http.StatusOK, "Movie doesn't exist !")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	movie, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusOK, "Movie doesn't exist !")
			return
		}
		httpjson.Internal(w, h.Log, "fetch movie for delete", err)
		return
	}

	if movie.Image != "" {
		if err := h.S3.Delete(ctx, movie.Image); err != nil {
			h.Log.Error("image delete failed", zap.Error(err), zap.String("movie_id", movie.ID.Hex()))
			httpjson.Fail(w, http.StatusForbidden, "Image couldn't be deleted!")
			return
		}
	}
	if movie.VideoURL != "" {
		if err := h.CDN.Destroy(ctx, movie.VideoURL); err != nil {
			h.Log.Error("video delete failed", zap.Error(err), zap.String("movie_id", movie.ID.Hex()))
			httpjson.Fail(w, http.StatusForbidden, "Video couldn't be deleted!")
			return
		}
	}

	n, err := h.Movies.Delete(ctx, id)
	if err != nil {
		httpjson.Internal(w, h.Log, "delete movie row", err)
		return
	}
	if n == 0 {
		httpjson.Fail(w, http.StatusForbidden, "Media removed but Data couldn't be deleted.")
		return
	}

	h.notifyAdmins("movie_deleted", httpjson.M{"movieId": req.MovieID, "title": movie.Title})
	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Movie deleted !"})
}
