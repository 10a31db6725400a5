package auth

import (
	"errors"
	"testing"
	"time"
)

func TestParseBearer(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"empty header", "", "", ErrEmptyToken},
		{"whitespace header", "   ", "", ErrEmptyToken},
		{"no scheme", "abc.def.ghi", "", ErrBadFormat},
		{"wrong scheme", "Basic abc", "", ErrBadFormat},
		{"lowercase scheme", "bearer abc", "", ErrBadFormat},
		{"missing token", "Bearer ", "", ErrBadFormat},
		{"ok", "Bearer abc.def.ghi", "abc.def.ghi", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearer(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseBearer(%q) err = %v, want %v", tt.header, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBearer(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestMintAndVerifyUser(t *testing.T) {
	tk := NewTokens("test-secret")

	tok, err := tk.MintUser("64f0c0ffee", UserTokenTTL)
	if err != nil {
		t.Fatalf("MintUser: %v", err)
	}

	claims, err := tk.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "64f0c0ffee" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "64f0c0ffee")
	}
	if claims.EmpID != "" {
		t.Errorf("EmpID = %q, want empty", claims.EmpID)
	}
}

func TestMintEmployeeCarriesCode(t *testing.T) {
	tk := NewTokens("test-secret")

	tok, err := tk.MintEmployee("EMP12345678", "4921", EmployeeLoginTTL)
	if err != nil {
		t.Fatalf("MintEmployee: %v", err)
	}

	claims, err := tk.Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.EmpID != "EMP12345678" {
		t.Errorf("EmpID = %q, want EMP12345678", claims.EmpID)
	}
	if claims.Code != "4921" {
		t.Errorf("Code = %q, want 4921", claims.Code)
	}
}

func TestVerifyExpiredIsDistinctFromInvalid(t *testing.T) {
	tk := NewTokens("test-secret")

	expired, err := tk.MintUser("u1", -time.Minute)
	if err != nil {
		t.Fatalf("MintUser: %v", err)
	}
	if _, err := tk.Verify(expired); !errors.Is(err, ErrExpired) {
		t.Errorf("expired token: err = %v, want ErrExpired", err)
	}

	if _, err := tk.Verify("not.a.token"); !errors.Is(err, ErrInvalid) {
		t.Errorf("garbage token: err = %v, want ErrInvalid", err)
	}

	// Signed with a different secret: invalid, not expired.
	other, err := NewTokens("other-secret").MintUser("u1", time.Hour)
	if err != nil {
		t.Fatalf("MintUser: %v", err)
	}
	if _, err := tk.Verify(other); !errors.Is(err, ErrInvalid) {
		t.Errorf("wrong-secret token: err = %v, want ErrInvalid", err)
	}
}
