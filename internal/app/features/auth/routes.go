// internal/app/features/auth/routes.go
package auth

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted under /api/auth.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/userSignUp", h.HandleUserSignUp)
	r.Post("/userLogin", h.HandleUserLogin)

	r.Post("/employeeLogin", h.HandleEmployeeLogin)
	r.Post("/employeeAuthenticate", h.HandleEmployeeAuthenticate)

	return r
}
