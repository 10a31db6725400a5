// internal/app/features/admin/routes.go
package admin

import (
	"github.com/dalemusser/reelhub/internal/app/system/gates"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/admin. Every route sits
// behind the admin gate.
func Routes(h *Handler, gate *gates.Gate) chi.Router {
	r := chi.NewRouter()
	r.Use(gate.AdminOnly)

	// Employees
	r.Post("/addEmployee", h.HandleAddEmployee)
	r.Patch("/updateEmployee/{empId}", h.HandleUpdateEmployee)
	r.Delete("/deleteEmployee/{empId}", h.HandleDeleteEmployee)
	r.Get("/fetchEmployees", h.HandleFetchEmployees)

	// Privilege
	r.Post("/makeAdmin/{empId}", h.HandleMakeAdmin)
	r.Post("/removeAdmin/{empId}", h.HandleRemoveAdmin)
	r.Post("/giveAdminAccessForPeriod/{empId}", h.HandleGiveAdminAccessForPeriod)
	r.Post("/removeAdminAccessPeriod/{empId}", h.HandleRemoveAdminAccessPeriod)

	// Users
	r.Get("/fetchUsers", h.HandleFetchUsers)
	r.Post("/deleteUser", h.HandleDeleteUser)

	// Dashboard
	r.Get("/fetchStartUpData", h.HandleStartUpData)

	// Catalog mutations
	r.Post("/addMovie", h.HandleAddMovie)
	r.Post("/updateMovieData", h.HandleUpdateMovieData)
	r.Post("/updateMovieMedia", h.HandleUpdateMovieMedia)
	r.Post("/recordMedia", h.HandleRecordMedia)
	r.Post("/recordUpdatedMedia", h.HandleRecordUpdatedMedia)
	r.Post("/deleteMovie", h.HandleDeleteMovie)

	return r
}
