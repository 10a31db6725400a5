// internal/app/features/auth/handler.go
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/dalemusser/reelhub/internal/app/store/employees"
	"github.com/dalemusser/reelhub/internal/app/store/users"
	"github.com/dalemusser/reelhub/internal/app/system/auth"
	"github.com/dalemusser/reelhub/internal/app/system/httpjson"
	"github.com/dalemusser/reelhub/internal/app/system/inputval"
	"github.com/dalemusser/reelhub/internal/app/system/mailer"
	"github.com/dalemusser/reelhub/internal/app/system/normalize"
	"github.com/dalemusser/reelhub/internal/app/system/ratelimit"
	"github.com/dalemusser/reelhub/internal/app/system/timeouts"
	"github.com/dalemusser/reelhub/internal/domain/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Handler serves the identity endpoints: user sign-up and login, and the
// two-stage employee login.
type Handler struct {
	Tokens    *auth.Tokens
	Users     *userstore.Store
	Employees *employeestore.Store
	Mail      *mailer.Mailer
	Log       *zap.Logger

	SiteName string
	BaseURL  string

	// Limits throttles the credential endpoints when set.
	Limits *ratelimit.LoginLimiter
}

// NewHandler constructs the auth Handler.
func NewHandler(tokens *auth.Tokens, users *userstore.Store, employees *employeestore.Store, mail *mailer.Mailer, logger *zap.Logger, siteName, baseURL string) *Handler {
	return &Handler{
		Tokens:    tokens,
		Users:     users,
		Employees: employees,
		Mail:      mail,
		Log:       logger,
		SiteName:  siteName,
		BaseURL:   baseURL,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleUserSignUp handles POST /api/auth/userSignUp.
func (h *Handler) HandleUserSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Fail(w, http.StatusBadRequest, "Data not provided")
		return
	}
	// Only the credentials are mandatory; name and phone are optional
	// profile fields.
	if req.Email == "" || req.Password == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Data not provided")
		return
	}

	email := normalize.Email(req.Email)
	if !inputval.IsValidEmail(email) {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid email provided")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		httpjson.Internal(w, h.Log, "hash password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user := models.User{
		Name:     normalize.Name(req.Name),
		Phone:    models.Phone{Number: req.Phone, Verified: true},
		Email:    models.Email{Address: email, Verified: true},
		Password: string(hash),
	}
	if _, err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Fail(w, http.StatusConflict, "User already exists")
			return
		}
		httpjson.Internal(w, h.Log, "create user", err)
		return
	}

	if h.Mail != nil {
		welcome := mailer.BuildWelcomeEmail(mailer.WelcomeEmailData{
			SiteName: h.SiteName,
			Name:     user.Name,
			BaseURL:  h.BaseURL,
		})
		welcome.To = email
		h.Mail.SendAsync(welcome)
	}

	httpjson.OK(w, http.StatusCreated, httpjson.M{"message": "User created successfully"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleUserLogin handles POST /api/auth/userLogin. Unknown email and
// wrong password answer identically so the endpoint does not leak which
// accounts exist.
func (h *Handler) HandleUserLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil || req.Email == "" || req.Password == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Data missing")
		return
	}
	if h.Limits != nil {
		if allowed, msg := h.Limits.Check(r, req.Email); !allowed {
			httpjson.Fail(w, http.StatusTooManyRequests, msg)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, normalize.Email(req.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		httpjson.Internal(w, h.Log, "user login lookup", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		httpjson.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if h.Limits != nil {
		h.Limits.ResetEmail(req.Email)
	}

	token, err := h.Tokens.MintUser(user.ID.Hex(), auth.UserTokenTTL)
	if err != nil {
		httpjson.Internal(w, h.Log, "mint user token", err)
		return
	}

	httpjson.OK(w, http.StatusOK, httpjson.M{"message": "Login successful", "token": token})
}

// HandleEmployeeLogin handles POST /api/auth/employeeLogin: credential
// check, then a short-lived token carrying a one-time code. The code is
// mailed to the employee; HandleEmployeeAuthenticate exchanges it for the
// full session token.
func (h *Handler) HandleEmployeeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil || req.Email == "" || req.Password == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Data missing")
		return
	}
	if h.Limits != nil {
		if allowed, msg := h.Limits.Check(r, req.Email); !allowed {
			httpjson.Fail(w, http.StatusTooManyRequests, msg)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := h.Employees.GetByEmail(ctx, normalize.Email(req.Email))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		httpjson.Internal(w, h.Log, "employee login lookup", err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(req.Password)) != nil {
		httpjson.Fail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if h.Limits != nil {
		h.Limits.ResetEmail(req.Email)
	}

	code, err := sixDigitCode()
	if err != nil {
		httpjson.Internal(w, h.Log, "mint login code", err)
		return
	}
	token, err := h.Tokens.MintEmployee(emp.EmpID, code, auth.EmployeeLoginTTL)
	if err != nil {
		httpjson.Internal(w, h.Log, "mint employee token", err)
		return
	}

	if h.Mail != nil {
		h.Mail.SendAsync(mailer.Email{
			To:       emp.Email,
			Subject:  fmt.Sprintf("%s login code", h.SiteName),
			TextBody: fmt.Sprintf("Hi %s,\n\nYour login code is %s.\n\nIf you did not try to sign in, contact your administrator.\n", emp.Name, code),
		})
	}

	emp.Password = ""
	httpjson.OK(w, http.StatusOK, httpjson.M{"token": token, "data": emp})
}

type authenticateRequest struct {
	Code  string `json:"code"`
	Token string `json:"token"`
}

// HandleEmployeeAuthenticate handles POST /api/auth/employeeAuthenticate:
// verifies the first-stage token, compares the submitted code against its
// code claim and issues the 24h session token.
func (h *Handler) HandleEmployeeAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if err := httpjson.Decode(r, &req); err != nil || req.Code == "" || req.Token == "" {
		httpjson.Fail(w, http.StatusBadRequest, "Code not given")
		return
	}

	claims, err := h.Tokens.Verify(req.Token)
	if err != nil {
		if errors.Is(err, auth.ErrExpired) {
			httpjson.Fail(w, http.StatusUnauthorized, "Session expired. Please login again.")
			return
		}
		httpjson.Fail(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	if claims.Code == "" || claims.Code != req.Code {
		httpjson.Fail(w, http.StatusBadRequest, "Invalid OTP")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	emp, err := h.Employees.FetchByEmpID(ctx, claims.EmpID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Fail(w, http.StatusNotFound, "Employee not found")
			return
		}
		httpjson.Internal(w, h.Log, "employee authenticate lookup", err)
		return
	}

	// Session token carries no code, so it cannot be replayed through
	// this exchange.
	token, err := h.Tokens.MintEmployee(emp.EmpID, "", auth.EmployeeSessionTTL)
	if err != nil {
		httpjson.Internal(w, h.Log, "mint session token", err)
		return
	}

	httpjson.OK(w, http.StatusOK, httpjson.M{"token": token, "data": emp})
}

// sixDigitCode draws a uniform 6-digit login code from crypto/rand.
func sixDigitCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", 100000+n.Int64()), nil
}
