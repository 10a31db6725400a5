// Package auth issues and verifies the signed bearer credentials used by
// every authenticated endpoint. Tokens are HS256 JWTs bound to a single
// shared secret; verification is pure and never touches storage.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes.
const (
	UserTokenTTL       = 30 * 24 * time.Hour // end-user sessions
	EmployeeLoginTTL   = 12 * time.Hour      // first-stage employee login
	EmployeeSessionTTL = 24 * time.Hour      // after code exchange
)

var (
	// ErrEmptyToken means the Authorization header was missing or blank.
	ErrEmptyToken = errors.New("access token is missing")
	// ErrBadFormat means the header was present but not "Bearer <token>".
	ErrBadFormat = errors.New(`authorization header must be "Bearer <token>"`)
	// ErrExpired means the token was well-formed and correctly signed but
	// its expiry has passed. Callers surface this differently from
	// ErrInvalid so clients know to re-authenticate rather than retry.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers every other verification failure: bad signature,
	// wrong algorithm, garbled payload.
	ErrInvalid = errors.New("token invalid")
)

// ParseBearer extracts the raw token from an Authorization header value.
// It never inspects the token itself.
func ParseBearer(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", ErrEmptyToken
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		return "", ErrBadFormat
	}
	return token, nil
}

// Claims is the payload carried by every token. Exactly one of UserID or
// EmpID is set; Code is present only on first-stage employee tokens and is
// consumed by the authenticate exchange.
type Claims struct {
	UserID string `json:"userId,omitempty"`
	EmpID  string `json:"empId,omitempty"`
	Code   string `json:"code,omitempty"`
	jwt.RegisteredClaims
}

// Tokens mints and verifies credentials with a single HMAC secret.
type Tokens struct {
	secret []byte
}

// NewTokens binds a Tokens instance to the signing secret.
func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret)}
}

// MintUser issues a user session token.
func (t *Tokens) MintUser(userID string, ttl time.Duration) (string, error) {
	return t.mint(Claims{UserID: userID}, ttl)
}

// MintEmployee issues an employee token. A non-empty code marks the token
// as first-stage: the authenticate exchange compares the submitted code
// against this claim before issuing the longer-lived session token.
func (t *Tokens) MintEmployee(empID, code string, ttl time.Duration) (string, error) {
	return t.mint(Claims{EmpID: empID, Code: code}, ttl)
}

func (t *Tokens) mint(c Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return tok.SignedString(t.secret)
}

// Verify checks the signature and expiry and returns the claims.
// Expired tokens come back as ErrExpired; everything else is ErrInvalid.
func (t *Tokens) Verify(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return t.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
