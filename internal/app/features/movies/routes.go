// internal/app/features/movies/routes.go
package movies

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/movie.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/getMovieList", h.HandleMovieList)
	r.Get("/getAllMovies", h.HandleAllMovies)
	r.Get("/getMovieListByGenre", h.HandleMoviesByGenre)
	r.Get("/getMovieListByLanguage", h.HandleMoviesByLanguage)
	r.Get("/getMovieListBySearch", h.HandleMoviesBySearch)
	r.Get("/getMovieListAdmin", h.HandleAdminMovieList)

	r.Get("/fetchMovieData", h.HandleFetchMovieData)
	r.Get("/fetchMovieDataClient", h.HandleFetchMovieDataClient)

	r.Post("/createWatchedData", h.HandleCreateWatchedData)

	return r
}
