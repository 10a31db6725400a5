// internal/app/features/admin/handler.go
package admin

import (
	"context"

	"github.com/dalemusser/reelhub/internal/app/media/cdn"
	"github.com/dalemusser/reelhub/internal/app/media/s3store"
	"github.com/dalemusser/reelhub/internal/app/realtime"
	"github.com/dalemusser/reelhub/internal/app/store/employees"
	"github.com/dalemusser/reelhub/internal/app/store/movies"
	"github.com/dalemusser/reelhub/internal/app/store/users"
	"github.com/dalemusser/reelhub/internal/app/store/watched"

	"go.uber.org/zap"
)

// ObjectStore is the slice of the S3 store these handlers use.
type ObjectStore interface {
	UploadURL(ctx context.Context, contentType, key string) (s3store.UploadCredentials, error)
	Delete(ctx context.Context, publicURL string) error
}

// MediaSigner is the slice of the CDN signer these handlers use.
type MediaSigner interface {
	SignUpload(publicID string) (cdn.UploadCredentials, error)
	Destroy(ctx context.Context, publicURL string) error
}

// Handler serves the admin-gated management endpoints. Every route in this
// package sits behind gates.Gate.AdminOnly; handlers can assume a verified
// admin-equivalent caller.
type Handler struct {
	Employees *employeestore.Store
	Users     *userstore.Store
	Movies    *moviestore.Store
	Watched   *watchedstore.Store
	S3        ObjectStore
	CDN       MediaSigner
	Hub       *realtime.Hub
	Log       *zap.Logger
}

// NewHandler constructs the admin Handler.
func NewHandler(
	employees *employeestore.Store,
	users *userstore.Store,
	movies *moviestore.Store,
	watched *watchedstore.Store,
	s3 ObjectStore,
	cdnSigner MediaSigner,
	hub *realtime.Hub,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Employees: employees,
		Users:     users,
		Movies:    movies,
		Watched:   watched,
		S3:        s3,
		CDN:       cdnSigner,
		Hub:       hub,
		Log:       logger,
	}
}

// notifyAdmins publishes a small event to the shared admin dashboard room.
func (h *Handler) notifyAdmins(eventType string, data any) {
	if h.Hub == nil {
		return
	}
	h.Hub.BroadcastRoom(realtime.AdminRoom, realtime.Message{Type: eventType, Data: data})
}
