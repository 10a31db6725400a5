// internal/app/features/admin/dashboard.go
package admin

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/reelhub/internal/app/system/httpjson"
	"github.com/dalemusser/reelhub/internal/app/system/timeouts"
)

// storageQuotaGB is the fixed media storage quota shown on the dashboard.
const storageQuotaGB = 15

// HandleStartUpData handles GET /api/admin/fetchStartUpData: the numbers
// the dashboard needs in one round trip.
func (h *Handler) HandleStartUpData(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	userCount, err := h.Users.Count(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "count users", err)
		return
	}
	movieCount, err := h.Movies.Count(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "count movies", err)
		return
	}
	employeeCount, err := h.Employees.Count(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "count employees", err)
		return
	}

	latest, err := h.Watched.LatestActivity(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "latest activity", err)
		return
	}

	months, err := h.Users.SignupsPerMonth(ctx, time.Now().Year())
	if err != nil {
		httpjson.Internal(w, h.Log, "signups per month", err)
		return
	}
	perMonth := make([]httpjson.M, 0, len(months))
	for _, m := range months {
		perMonth = append(perMonth, httpjson.M{"month": m.Month, "totalUsers": m.Count})
	}

	usedBytes, err := h.Movies.TotalMediaBytes(ctx)
	if err != nil {
		httpjson.Internal(w, h.Log, "total media bytes", err)
		return
	}
	usedGB := float64(usedBytes) / (1 << 30)

	httpjson.OK(w, http.StatusOK, httpjson.M{
		"userCount":     userCount,
		"movieCount":    movieCount,
		"employeeCount": employeeCount,
		"userPerMonth":  perMonth,
		"latestWatched": latest,
		"totalData":     storageQuotaGB,
		"usedData":      usedGB,
	})
}
