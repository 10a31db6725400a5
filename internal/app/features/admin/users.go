// internal/app/features/admin/users.go
package admin

import (
	"context"
	"net/http"

	"github.com/dalemusser/reelhub/internal/app/system/httpjson"
	"github.com/dalemusser/reelhub/internal/app/system/timeouts"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fetchUsersLimit caps the admin user list.
const fetchUsersLimit = 100

// HandleFetchUsers handles GET /api/admin/fetchUsers.
func (h *Handler) HandleFetchUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Users.List(ctx, fetchUsersLimit)
	if err != nil {
		httpjson.Internal(w, h.Log, "list users", err)
		return
	}
	httpjson.OK(w, http.StatusOK, httpjson.M{"userList": list})
}

type deleteUserRequest struct {
	UserID string `json:"userId"`
}

// HandleDeleteUser handles POST /api/admin/deleteUser. Users are soft
// deleted; the record stays for the watch-history joins.
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	var req deleteUserRequest
	if err := httpjson.Decode(r, &req); err != nil || req.UserID == "" {
		httpjson.Fail(w, http.StatusBadRequest, "User don't exists.")
		return
	}

	id, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "User don't exists.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matched, err := h.Users.SoftDelete(ctx, id)
	if err != nil {
		httpjson.Internal(w, h.Log, "soft delete user", err)
		return
	}
	if matched == 0 {
		httpjson.Fail(w, http.StatusBadRequest, "User don't exists.")
		return
	}

	h.notifyAdmins("user_deleted", httpjson.M{"userId": req.UserID})
	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "User deleted successfully."})
}
