// Package gates enforces bearer authentication and privilege checks at the
// handler boundary.
//
// The admin gate runs three steps in order: parse the Authorization header,
// verify the token signature and expiry, and only then look the employee up
// in storage. A credential that fails parsing or verification never causes a
// database read. A missing employee and an employee without privilege are
// deliberately indistinguishable to the caller (both answer UNAUTHORISED).
package gates

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/reelhub/internal/app/system/auth"
	"github.com/dalemusser/reelhub/internal/app/system/httpjson"
	"github.com/dalemusser/reelhub/internal/app/system/timeouts"
	"github.com/dalemusser/reelhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Failure codes carried in the "code" field of gate rejections.
const (
	CodeEmptyToken    = "EMPTY_TOKEN"
	CodeInvalidFormat = "INVALID_FORMAT"
	CodeTokenExpired  = "TOKEN_EXPIRED"
	CodeInvalidToken  = "INVALID_TOKEN"
	CodeUnauthorised  = "UNAUTHORISED"
)

// EmployeeFetcher is the slice of the employee store the gate needs.
type EmployeeFetcher interface {
	FetchByEmpID(ctx context.Context, empID string) (*models.Employee, error)
}

// UserFetcher is the slice of the user store the gate needs.
type UserFetcher interface {
	FetchByID(ctx context.Context, id string) (*models.User, error)
}

// Gate checks credentials and privilege for protected endpoints.
// Now is overridable so elevation-window tests can pin the clock;
// nil means time.Now.
type Gate struct {
	Tokens    *auth.Tokens
	Employees EmployeeFetcher
	Users     UserFetcher
	Log       *zap.Logger
	Now       func() time.Time
}

func (g *Gate) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// RequireAdmin authenticates the request and checks admin-equivalent
// privilege: the admin role outright, or the employee role inside a live
// elevation window. On failure it writes the rejection body and returns
// ok=false; the handler must return immediately.
func (g *Gate) RequireAdmin(w http.ResponseWriter, r *http.Request) (empID string, ok bool) {
	claims, ok := g.verify(w, r)
	if !ok {
		return "", false
	}
	if claims.EmpID == "" {
		httpjson.FailCode(w, http.StatusUnauthorized, CodeInvalidToken, "Invalid token")
		return "", false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := g.Employees.FetchByEmpID(ctx, claims.EmpID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.FailCode(w, http.StatusForbidden, CodeUnauthorised, "Unathorised Access !")
			return "", false
		}
		httpjson.Internal(w, g.Log, "gate employee lookup", err)
		return "", false
	}
	if !emp.AdminEquivalentAt(g.now()) {
		httpjson.FailCode(w, http.StatusForbidden, CodeUnauthorised, "Unathorised Access !")
		return "", false
	}
	return emp.EmpID, true
}

// RequireUser authenticates a user-bound request and confirms the account
// still exists and has not been soft-deleted.
func (g *Gate) RequireUser(w http.ResponseWriter, r *http.Request) (userID string, ok bool) {
	claims, ok := g.verify(w, r)
	if !ok {
		return "", false
	}
	if claims.UserID == "" {
		httpjson.FailCode(w, http.StatusUnauthorized, CodeInvalidToken, "Invalid token")
		return "", false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := g.Users.FetchByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.FailCode(w, http.StatusForbidden, CodeUnauthorised, "Unathorised Access !")
			return "", false
		}
		httpjson.Internal(w, g.Log, "gate user lookup", err)
		return "", false
	}
	if u.Status == models.UserDeleted {
		httpjson.FailCode(w, http.StatusForbidden, CodeUnauthorised, "Unathorised Access !")
		return "", false
	}
	return claims.UserID, true
}

// verify runs the I/O-free part of the gate: header parse + token verify.
func (g *Gate) verify(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	token, err := auth.ParseBearer(r.Header.Get("Authorization"))
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmptyToken):
			httpjson.FailCode(w, http.StatusUnauthorized, CodeEmptyToken, "Access token is missing")
		default:
			httpjson.FailCode(w, http.StatusUnauthorized, CodeInvalidFormat, `Authorization header must be "Bearer <token>"`)
		}
		return nil, false
	}

	claims, err := g.Tokens.Verify(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			httpjson.FailCode(w, http.StatusUnauthorized, CodeTokenExpired, "Session expired. Please login again.")
		} else {
			httpjson.FailCode(w, http.StatusUnauthorized, CodeInvalidToken, "Invalid token")
		}
		return nil, false
	}
	return claims, true
}

type ctxKey string

const empIDKey ctxKey = "empID"

// AdminOnly is the middleware form of RequireAdmin for whole route groups.
// The resolved employee id is stored in the request context; handlers read
// it back with EmpID.
func (g *Gate) AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		empID, ok := g.RequireAdmin(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), empIDKey, empID)))
	})
}

// EmpID returns the employee id resolved by AdminOnly.
func EmpID(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(empIDKey).(string)
	return id, ok && id != ""
}
