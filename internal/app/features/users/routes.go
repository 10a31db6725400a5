// internal/app/features/users/routes.go
package users

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/user.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/getWatchHistory", h.HandleWatchHistory)
	r.Post("/updateMovieWatched", h.HandleUpdateMovieWatched)

	return r
}
