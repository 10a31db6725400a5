package admin_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/reelhub/internal/app/media/cdn"
	"github.com/dalemusser/reelhub/internal/app/media/s3store"
	"github.com/dalemusser/reelhub/internal/testutil"
)

func validMoviePayload() map[string]any {
	return map[string]any{
		"title":     "Inception",
		"bio":       "A thief who steals corporate secrets through dream-sharing.",
		"year":      2010,
		"genre":     []string{"sci-fi", "thriller"},
		"rating":    8.8,
		"director":  "Christopher Nolan",
		"language":  []string{"english"},
		"cast":      "Leonardo DiCaprio, Joseph Gordon-Levitt",
		"image":     "image/jpeg",
		"mediaSize": 1 << 30,
	}
}

func TestHandleAddMovie_Success(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/api/admin/addMovie", validMoviePayload())
	rec := httptest.NewRecorder()
	handler.HandleAddMovie(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	body := testutil.DecodeBody(t, rec)
	testutil.AssertOK(t, body)
	if body["message"] != "Movie added successfully" {
		t.Errorf("message: got %v", body["message"])
	}

	movieData, _ := body["movieData"].(map[string]any)
	if movieData == nil {
		t.Fatal("expected movieData")
	}
	// Stored normalized: folded director, split cast, no media yet.
	if movieData["director"] != "christopher nolan" {
		t.Errorf("director: got %v", movieData["director"])
	}
	if img, _ := movieData["image"].(string); img != "" {
		t.Errorf("image should be empty before recordMedia, got %q", img)
	}

	imgCred, _ := body["imgUploadCred"].(map[string]any)
	if imgCred == nil || imgCred["uploadUrl"] == "" || imgCred["fileUrl"] == "" {
		t.Errorf("imgUploadCred incomplete: %v", body["imgUploadCred"])
	}
	videoCred, _ := body["videoUploadCred"].(map[string]any)
	if videoCred == nil || videoCred["signature"] == "" {
		t.Errorf("videoUploadCred incomplete: %v", body["videoUploadCred"])
	}
}

func TestHandleAddMovie_Validation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(map[string]any)
		status  int
		message string
	}{
		{
			name:    "missing title",
			mutate:  func(p map[string]any) { delete(p, "title") },
			status:  http.StatusBadRequest,
			message: "Missing fields!",
		},
		{
			name:    "missing rating",
			mutate:  func(p map[string]any) { delete(p, "rating") },
			status:  http.StatusBadRequest,
			message: "Missing fields!",
		},
		{
			name:    "future year",
			mutate:  func(p map[string]any) { p["year"] = time.Now().Year() + 2 },
			status:  http.StatusBadRequest,
			message: "Invalid movie release year",
		},
		{
			name:    "rating above create bound",
			mutate:  func(p map[string]any) { p["rating"] = 10.5 },
			status:  http.StatusBadRequest,
			message: "Invalid rating!",
		},
		{
			name:    "non-media artwork type",
			mutate:  func(p map[string]any) { p["image"] = "application/pdf" },
			status:  http.StatusBadRequest,
			message: "Invalid file type",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler, _ := newTestHandler(t)

			payload := validMoviePayload()
			tc.mutate(payload)

			req := testutil.JSONRequest(t, "POST", "/api/admin/addMovie", payload)
			rec := httptest.NewRecorder()
			handler.HandleAddMovie(rec, req)

			if rec.Code != tc.status {
				t.Fatalf("status: got %d, want %d (body %s)", rec.Code, tc.status, rec.Body.String())
			}
			testutil.AssertFail(t, testutil.DecodeBody(t, rec), tc.message)
		})
	}
}

func TestHandleAddMovie_Duplicate(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/api/admin/addMovie", validMoviePayload())
	rec := httptest.NewRecorder()
	handler.HandleAddMovie(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first add failed: %d %s", rec.Code, rec.Body.String())
	}

	// Director matching is case-insensitive via fold-on-write.
	payload := validMoviePayload()
	payload["director"] = "CHRISTOPHER NOLAN"
	req = testutil.JSONRequest(t, "POST", "/api/admin/addMovie", payload)
	rec = httptest.NewRecorder()
	handler.HandleAddMovie(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate add: got %d, want %d", rec.Code, http.StatusConflict)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Movie already exists!")
}

func TestHandleUpdateMovieData(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	movie := fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	payload := map[string]any{
		"movieId":  movie.ID.Hex(),
		"title":    "Inception",
		"bio":      "Updated synopsis.",
		"year":     2010,
		"genre":    []string{"sci-fi"},
		"rating":   4.5,
		"director": "Christopher Nolan",
		"language": []string{"english"},
		"cast":     "Leonardo DiCaprio",
	}
	req := testutil.JSONRequest(t, "POST", "/api/admin/updateMovieData", payload)
	rec := httptest.NewRecorder()
	handler.HandleUpdateMovieData(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := testutil.DecodeBody(t, rec)
	data, _ := body["data"].(map[string]any)
	if data["bio"] != "Updated synopsis." {
		t.Errorf("bio: got %v", data["bio"])
	}
	if data["rating"] != 4.5 {
		t.Errorf("rating: got %v", data["rating"])
	}
}

func TestHandleUpdateMovieData_RatingBound(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	movie := fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	// 8.8 was a valid create rating, but updates cap at 5.
	payload := map[string]any{
		"movieId":  movie.ID.Hex(),
		"title":    "Inception",
		"bio":      "Synopsis.",
		"year":     2010,
		"genre":    []string{"sci-fi"},
		"rating":   8.8,
		"director": "Christopher Nolan",
		"language": []string{"english"},
		"cast":     "Leonardo DiCaprio",
	}
	req := testutil.JSONRequest(t, "POST", "/api/admin/updateMovieData", payload)
	rec := httptest.NewRecorder()
	handler.HandleUpdateMovieData(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Invalid rating!")
}

func TestHandleUpdateMovieData_MissingMovie(t *testing.T) {
	handler, _ := newTestHandler(t)

	payload := map[string]any{
		"movieId":  "zzz",
		"title":    "Inception",
		"bio":      "Synopsis.",
		"year":     2010,
		"genre":    []string{"sci-fi"},
		"rating":   4.0,
		"director": "Christopher Nolan",
		"language": []string{"english"},
		"cast":     "Leonardo DiCaprio",
	}
	req := testutil.JSONRequest(t, "POST", "/api/admin/updateMovieData", payload)
	rec := httptest.NewRecorder()
	handler.HandleUpdateMovieData(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad hex: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Movie don't exists!")

	payload["movieId"] = "64b0c8f2a1b2c3d4e5f60718"
	req = testutil.JSONRequest(t, "POST", "/api/admin/updateMovieData", payload)
	rec = httptest.NewRecorder()
	handler.HandleUpdateMovieData(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("absent movie: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Movie doesn't exists!")
}

func TestHandleUpdateMovieMedia(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	movie := fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	req := testutil.JSONRequest(t, "POST", "/api/admin/updateMovieMedia", map[string]any{
		"movieId": movie.ID.Hex(),
		"image":   "image/png",
		"video":   true,
	})
	rec := httptest.NewRecorder()
	handler.HandleUpdateMovieMedia(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusCreated, rec.Body.String())
	}
	body := testutil.DecodeBody(t, rec)
	testutil.AssertOK(t, body)
	if body["imgUploadCred"] == nil {
		t.Error("expected imgUploadCred")
	}
	if body["videoUploadCred"] == nil {
		t.Error("expected videoUploadCred")
	}
}

func TestHandleUpdateMovieMedia_ImageOnly(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	movie := fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	req := testutil.JSONRequest(t, "POST", "/api/admin/updateMovieMedia", map[string]any{
		"movieId": movie.ID.Hex(),
		"image":   "image/png",
	})
	rec := httptest.NewRecorder()
	handler.HandleUpdateMovieMedia(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	body := testutil.DecodeBody(t, rec)
	if body["imgUploadCred"] == nil {
		t.Error("expected imgUploadCred")
	}
	if _, ok := body["videoUploadCred"]; ok {
		t.Error("videoUploadCred issued without video flag")
	}
}

func TestHandleUpdateMovieMedia_NoMovieID(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/api/admin/updateMovieMedia", map[string]any{
		"image": "image/png",
	})
	rec := httptest.NewRecorder()
	handler.HandleUpdateMovieMedia(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Data not given !")
}

func TestHandleRecordMedia(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	movie := fixtures.CreatePendingMovie(ctx, "Unfinished Upload", 2024)

	req := testutil.JSONRequest(t, "POST", "/api/admin/recordMedia", map[string]any{
		"movieId":  movie.ID.Hex(),
		"imgURL":   "https://test-bucket.s3.us-east-1.amazonaws.com/" + movie.ID.Hex(),
		"videoURL": "https://res.cloudinary.com/test-cloud/video/upload/v1/movies/uploads/" + movie.ID.Hex() + ".mp4",
		"duration": 5400.5,
	})
	rec := httptest.NewRecorder()
	handler.HandleRecordMedia(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := testutil.DecodeBody(t, rec)
	if body["message"] != "Media recorded successfully!" {
		t.Errorf("message: got %v", body["message"])
	}
}

func TestHandleRecordMedia_MissingFields(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/api/admin/recordMedia", map[string]any{
		"movieId": "64b0c8f2a1b2c3d4e5f60718",
		"imgURL":  "https://example.com/a.jpg",
	})
	rec := httptest.NewRecorder()
	handler.HandleRecordMedia(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Missing fields!")
}

func TestHandleRecordUpdatedMedia(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	movie := fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	req := testutil.JSONRequest(t, "POST", "/api/admin/recordUpdatedMedia", map[string]any{
		"movieId": movie.ID.Hex(),
		"imgURL":  "https://test-bucket.s3.us-east-1.amazonaws.com/replacement",
	})
	rec := httptest.NewRecorder()
	handler.HandleRecordUpdatedMedia(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}

	// Neither URL supplied is a client error.
	req = testutil.JSONRequest(t, "POST", "/api/admin/recordUpdatedMedia", map[string]any{
		"movieId": movie.ID.Hex(),
	})
	rec = httptest.NewRecorder()
	handler.HandleRecordUpdatedMedia(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no URLs: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Missing fields!")
}

func TestHandleDeleteMovie_NoMedia(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// A movie whose upload never finished has no external media, so the
	// delete path touches neither backend.
	movie := fixtures.CreatePendingMovie(ctx, "Unfinished Upload", 2024)

	req := testutil.JSONRequest(t, "POST", "/api/admin/deleteMovie", map[string]string{
		"movieId": movie.ID.Hex(),
	})
	rec := httptest.NewRecorder()
	handler.HandleDeleteMovie(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := testutil.DecodeBody(t, rec)
	testutil.AssertOK(t, body)
	if body["message"] != "Movie deleted !" {
		t.Errorf("message: got %v", body["message"])
	}
}

func TestHandleDeleteMovie_Invalid(t *testing.T) {
	handler, _ := newTestHandler(t)

	// Missing id: the failure still answers 200.
	req := testutil.JSONRequest(t, "POST", "/api/admin/deleteMovie", map[string]string{})
	rec := httptest.NewRecorder()
	handler.HandleDeleteMovie(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("missing id: got %d, want %d", rec.Code, http.StatusOK)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Invalid data !")

	// Unknown movie.
	req = testutil.JSONRequest(t, "POST", "/api/admin/deleteMovie", map[string]string{
		"movieId": "64b0c8f2a1b2c3d4e5f60718",
	})
	rec = httptest.NewRecorder()
	handler.HandleDeleteMovie(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unknown movie: got %d, want %d", rec.Code, http.StatusOK)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Movie doesn't exist !")
}

// flakyObjectStore stands in for the S3 store with a controllable Delete.
type flakyObjectStore struct {
	deleteErr error
	deleted   []string
}

func (f *flakyObjectStore) UploadURL(ctx context.Context, contentType, key string) (s3store.UploadCredentials, error) {
	return s3store.UploadCredentials{}, nil
}

func (f *flakyObjectStore) Delete(ctx context.Context, publicURL string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, publicURL)
	return nil
}

// flakyMediaSigner stands in for the CDN signer with a controllable Destroy.
type flakyMediaSigner struct {
	destroyErr error
	destroyed  []string
}

func (f *flakyMediaSigner) SignUpload(publicID string) (cdn.UploadCredentials, error) {
	return cdn.UploadCredentials{}, nil
}

func (f *flakyMediaSigner) Destroy(ctx context.Context, publicURL string) error {
	if f.destroyErr != nil {
		return f.destroyErr
	}
	f.destroyed = append(f.destroyed, publicURL)
	return nil
}

func TestHandleDeleteMovie_BackendFailureKeepsRecord(t *testing.T) {
	cases := []struct {
		name        string
		imageErr    error
		videoErr    error
		wantMessage string
	}{
		{"image delete fails", errors.New("object storage unavailable"), nil, "Image couldn't be deleted!"},
		{"video delete fails", nil, errors.New("cdn unavailable"), "Video couldn't be deleted!"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler, fixtures := newTestHandler(t)
			objects := &flakyObjectStore{deleteErr: tc.imageErr}
			signer := &flakyMediaSigner{destroyErr: tc.videoErr}
			handler.S3 = objects
			handler.CDN = signer

			ctx, cancel := testutil.TestContext()
			defer cancel()
			movie := fixtures.CreateMovie(ctx, "Interstellar", 2014, 8.7)

			rec := httptest.NewRecorder()
			handler.HandleDeleteMovie(rec, testutil.JSONRequest(t, "POST", "/api/admin/deleteMovie", map[string]string{
				"movieId": movie.ID.Hex(),
			}))

			if rec.Code != http.StatusForbidden {
				t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusForbidden, rec.Body.String())
			}
			testutil.AssertFail(t, testutil.DecodeBody(t, rec), tc.wantMessage)

			exists, err := handler.Movies.Exists(ctx, movie.ID)
			if err != nil {
				t.Fatalf("Exists failed: %v", err)
			}
			if !exists {
				t.Error("record should survive a failed media delete")
			}
			if tc.videoErr != nil && len(signer.destroyed) != 0 {
				// Destroy returned the injected error before recording.
				t.Error("video destroy should have failed")
			}
			if tc.imageErr != nil && len(objects.deleted) != 0 {
				t.Error("image delete should have failed")
			}
			// Image is removed before the video; a video failure means the
			// image was already gone.
			if tc.videoErr != nil && len(objects.deleted) != 1 {
				t.Errorf("image deletes: got %d, want 1", len(objects.deleted))
			}
		})
	}
}

func TestHandleDeleteMovie_RemovesMediaThenRecord(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	objects := &flakyObjectStore{}
	signer := &flakyMediaSigner{}
	handler.S3 = objects
	handler.CDN = signer

	ctx, cancel := testutil.TestContext()
	defer cancel()
	movie := fixtures.CreateMovie(ctx, "Interstellar", 2014, 8.7)

	rec := httptest.NewRecorder()
	handler.HandleDeleteMovie(rec, testutil.JSONRequest(t, "POST", "/api/admin/deleteMovie", map[string]string{
		"movieId": movie.ID.Hex(),
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := testutil.DecodeBody(t, rec)
	testutil.AssertOK(t, body)
	if body["message"] != "Movie deleted !" {
		t.Errorf("message: got %v", body["message"])
	}

	if len(objects.deleted) != 1 || objects.deleted[0] != movie.Image {
		t.Errorf("image deletes: got %v", objects.deleted)
	}
	if len(signer.destroyed) != 1 || signer.destroyed[0] != movie.VideoURL {
		t.Errorf("video destroys: got %v", signer.destroyed)
	}

	exists, err := handler.Movies.Exists(ctx, movie.ID)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("record should be deleted once media removal succeeds")
	}
}
