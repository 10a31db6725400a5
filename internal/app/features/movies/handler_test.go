package movies_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	moviesfeature "github.com/dalemusser/reelhub/internal/app/features/movies"
	employeestore "github.com/dalemusser/reelhub/internal/app/store/employees"
	moviestore "github.com/dalemusser/reelhub/internal/app/store/movies"
	userstore "github.com/dalemusser/reelhub/internal/app/store/users"
	watchedstore "github.com/dalemusser/reelhub/internal/app/store/watched"
	"github.com/dalemusser/reelhub/internal/app/system/auth"
	"github.com/dalemusser/reelhub/internal/app/system/gates"
	"github.com/dalemusser/reelhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*moviesfeature.Handler, *auth.Tokens, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	tokens := auth.NewTokens("test-signing-key-not-for-production")
	users := userstore.New(db)
	employees := employeestore.New(db)
	movies := moviestore.New(db)
	watched := watchedstore.New(db)

	gate := &gates.Gate{
		Tokens:    tokens,
		Employees: employees,
		Users:     users,
		Log:       logger,
	}

	handler := moviesfeature.NewHandler(gate, movies, users, watched, logger)
	return handler, tokens, testutil.NewFixtures(t, db)
}

func TestHandleMovieList_Rails(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMovie(ctx, "Old But Great", 1999, 9.1)
	fixtures.CreateMovie(ctx, "Mediocre", 2001, 5.0)

	req := httptest.NewRequest("GET", "/api/movie/getMovieList", nil)
	rec := httptest.NewRecorder()
	handler.HandleMovieList(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	body := testutil.DecodeBody(t, rec)
	testutil.AssertOK(t, body)

	newList, _ := body["newMovieList"].([]any)
	bestList, _ := body["bestMovieList"].([]any)
	seriesList, _ := body["bestSeriesList"].([]any)

	if len(newList) != 0 {
		t.Errorf("newMovieList: got %d, want 0 (nothing from this year)", len(newList))
	}
	if len(bestList) != 1 {
		t.Errorf("bestMovieList: got %d, want 1 (rating > 7)", len(bestList))
	}
	if len(seriesList) != 0 {
		t.Errorf("bestSeriesList: got %d, want 0 (no series seeded)", len(seriesList))
	}
}

func TestHandleAllMovies_OnlyMediaComplete(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)
	fixtures.CreatePendingMovie(ctx, "Unfinished Upload", 2024)

	req := httptest.NewRequest("GET", "/api/movie/getAllMovies", nil)
	rec := httptest.NewRecorder()
	handler.HandleAllMovies(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	body := testutil.DecodeBody(t, rec)
	list, _ := body["movieList"].([]any)
	if len(list) != 1 {
		t.Errorf("movieList: got %d, want 1", len(list))
	}
}

func TestHandleMoviesByGenre_EmptyParam(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/movie/getMovieListByGenre", nil)
	rec := httptest.NewRecorder()
	handler.HandleMoviesByGenre(rec, req)

	// The empty-parameter answer is a 200 with ok=false.
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Empty genre")
}

func TestHandleMoviesByGenre_Match(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	req := httptest.NewRequest("GET", "/api/movie/getMovieListByGenre?genre=drama", nil)
	rec := httptest.NewRecorder()
	handler.HandleMoviesByGenre(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	body := testutil.DecodeBody(t, rec)
	testutil.AssertOK(t, body)
	data, _ := body["data"].([]any)
	if len(data) != 1 {
		t.Errorf("data: got %d, want 1", len(data))
	}
}

func TestHandleMoviesByLanguage_EmptyParam(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/movie/getMovieListByLanguage", nil)
	rec := httptest.NewRecorder()
	handler.HandleMoviesByLanguage(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Empty language")
}

func TestHandleMoviesBySearch_EmptyParam(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/movie/getMovieListBySearch", nil)
	rec := httptest.NewRecorder()
	handler.HandleMoviesBySearch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Empty keyword")
}

func TestHandleAdminMovieList_RequiresAdmin(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/movie/getMovieListAdmin", nil)
	rec := httptest.NewRecorder()
	handler.HandleAdminMovieList(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	body := testutil.DecodeBody(t, rec)
	if body["code"] != gates.CodeEmptyToken {
		t.Errorf("code: got %v, want %v", body["code"], gates.CodeEmptyToken)
	}
}

func TestHandleFetchMovieData(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	movie := fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	req := httptest.NewRequest("GET", "/api/movie/fetchMovieData?movieId="+movie.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	handler.HandleFetchMovieData(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	body := testutil.DecodeBody(t, rec)
	testutil.AssertOK(t, body)
	data, _ := body["data"].(map[string]any)
	if data["title"] != "Inception" {
		t.Errorf("title: got %v", data["title"])
	}
}

func TestHandleFetchMovieData_BadID(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	for _, target := range []string{
		"/api/movie/fetchMovieData",
		"/api/movie/fetchMovieData?movieId=zzz",
		"/api/movie/fetchMovieData?movieId=64b0c8f2a1b2c3d4e5f60718",
	} {
		req := httptest.NewRequest("GET", target, nil)
		rec := httptest.NewRecorder()
		handler.HandleFetchMovieData(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d, want %d", target, rec.Code, http.StatusOK)
		}
		testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Invalid movie")
	}
}

func TestHandleFetchMovieDataClient_RequiresUser(t *testing.T) {
	handler, tokens, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Asha Rao", "asha@example.com")
	movie := fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	// Without a credential.
	req := httptest.NewRequest("GET", "/api/movie/fetchMovieDataClient?movieId="+movie.ID.Hex(), nil)
	rec := httptest.NewRecorder()
	handler.HandleFetchMovieDataClient(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}

	// With a valid user token.
	token, err := tokens.MintUser(user.ID.Hex(), auth.UserTokenTTL)
	if err != nil {
		t.Fatalf("MintUser failed: %v", err)
	}
	req = testutil.BearerRequest(t, "GET", "/api/movie/fetchMovieDataClient?movieId="+movie.ID.Hex(), token, nil)
	rec = httptest.NewRecorder()
	handler.HandleFetchMovieDataClient(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("authenticated: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	testutil.AssertOK(t, testutil.DecodeBody(t, rec))
}

func TestHandleCreateWatchedData(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Asha Rao", "asha@example.com")
	movie := fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	req := testutil.JSONRequest(t, "POST", "/api/movie/createWatchedData", map[string]any{
		"movieId":  movie.ID.Hex(),
		"token":    user.ID.Hex(),
		"duration": 1200,
		"adsCount": 3,
	})
	rec := httptest.NewRecorder()
	handler.HandleCreateWatchedData(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	body := testutil.DecodeBody(t, rec)
	testutil.AssertOK(t, body)
	if body["message"] != "Watched document created." {
		t.Errorf("message: got %v", body["message"])
	}
}

func TestHandleCreateWatchedData_MissingFields(t *testing.T) {
	handler, _, _ := newTestHandler(t)

	req := testutil.JSONRequest(t, "POST", "/api/movie/createWatchedData", map[string]any{
		"movieId": "64b0c8f2a1b2c3d4e5f60718",
	})
	rec := httptest.NewRecorder()
	handler.HandleCreateWatchedData(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Missing data fields")
}

func TestHandleCreateWatchedData_UnknownUser(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	movie := fixtures.CreateMovie(ctx, "Inception", 2010, 8.8)

	req := testutil.JSONRequest(t, "POST", "/api/movie/createWatchedData", map[string]any{
		"movieId":  movie.ID.Hex(),
		"token":    "64b0c8f2a1b2c3d4e5f60718",
		"duration": 1200,
		"adsCount": 3,
	})
	rec := httptest.NewRecorder()
	handler.HandleCreateWatchedData(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Invalid access")
}

func TestHandleCreateWatchedData_UnknownMovie(t *testing.T) {
	handler, _, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fixtures.CreateUser(ctx, "Asha Rao", "asha@example.com")

	req := testutil.JSONRequest(t, "POST", "/api/movie/createWatchedData", map[string]any{
		"movieId":  "64b0c8f2a1b2c3d4e5f60718",
		"token":    user.ID.Hex(),
		"duration": 1200,
		"adsCount": 3,
	})
	rec := httptest.NewRecorder()
	handler.HandleCreateWatchedData(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
	testutil.AssertFail(t, testutil.DecodeBody(t, rec), "Invalid movie")
}
