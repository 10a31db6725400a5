// Package httpjson writes the wire shape shared by every API endpoint:
// successes are {"ok":true, ...} and failures are {"ok":false,"message":...}
// (gate failures add a machine-readable "code"). Handlers never write JSON
// directly.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// M is the payload map merged into success responses.
type M map[string]any

// OK writes a success envelope with the given extra fields.
func OK(w http.ResponseWriter, status int, fields M) {
	body := M{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	write(w, status, body)
}

// Fail writes a failure envelope.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, M{"ok": false, "message": message})
}

// FailCode writes a failure envelope with a machine-readable code,
// used by the authorization gate.
func FailCode(w http.ResponseWriter, status int, code, message string) {
	write(w, status, M{"ok": false, "code": code, "message": message})
}

// Internal logs the underlying error and answers with a generic message.
// The detail never reaches the client.
func Internal(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	if logger != nil {
		logger.Error("internal error", zap.String("op", op), zap.Error(err))
	}
	Fail(w, http.StatusInternalServerError, "Internal server error")
}

// Decode reads a JSON request body into dst. The body is capped at 1 MiB;
// an empty body decodes into the zero value without error.
func Decode(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, 1<<20)
	err := json.NewDecoder(body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func write(w http.ResponseWriter, status int, body M) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
