// Package inputval holds the pure field validators used by the sign-up,
// employee and catalog endpoints. Every function is total: any input maps
// to a value or an error, never a panic.
package inputval

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
)

const emailLocalChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!#$%&'*+-/=?^_`{|}~"

// IsValidEmail checks the practical local@domain shape: dot-atom local
// part (no leading, trailing or doubled dots) and hyphenated alphanumeric
// domain labels. Single-label domains are allowed for dev environments.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.LastIndex(s, "@")
	if at <= 0 || at == len(s)-1 {
		return false
	}
	return validDotAtom(s[:at]) && validDomain(s[at+1:])
}

func validDotAtom(local string) bool {
	for _, seg := range strings.Split(local, ".") {
		if seg == "" {
			return false
		}
		for _, c := range seg {
			if !strings.ContainsRune(emailLocalChars, c) {
				return false
			}
		}
	}
	return true
}

func validDomain(domain string) bool {
	for _, label := range strings.Split(domain, ".") {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, c := range label {
			if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-') {
				return false
			}
		}
	}
	return true
}

// IsValidPhone accepts exactly ten digits.
func IsValidPhone(s string) bool {
	return allDigits(strings.TrimSpace(s), 10)
}

// IsValidAadhaar accepts exactly twelve digits.
func IsValidAadhaar(s string) bool {
	return allDigits(strings.TrimSpace(s), 12)
}

func allDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

var panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

// NormalizePAN uppercases and trims a PAN before validation and storage.
func NormalizePAN(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// IsValidPAN checks the 5-letter, 4-digit, 1-letter shape on an already
// normalized value.
func IsValidPAN(s string) bool {
	return panPattern.MatchString(s)
}

// ParseSalary parses a non-negative decimal salary.
func ParseSalary(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid salary %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("salary must not be negative")
	}
	return v, nil
}

// ParseDOB parses a DD-MM-YYYY date of birth. time.Parse round-trips the
// calendar, so impossible dates like 31-02-2000 are rejected.
func ParseDOB(s string) (time.Time, error) {
	d, err := time.Parse("02-01-2006", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date of birth %q, want DD-MM-YYYY", s)
	}
	return d.UTC(), nil
}

// AgeAt computes whole years between dob and now, birthday-aware: the age
// increments on the birthday itself, not at the start of the year.
func AgeAt(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	return years
}

// ValidEmployeeAge bounds hiring age to 14 through 100 inclusive.
func ValidEmployeeAge(age int) bool {
	return age >= 14 && age <= 100
}

// ValidMovieYear accepts release years from the first motion picture (1888)
// through next year, to allow pre-release catalog entries.
func ValidMovieYear(year int, now time.Time) bool {
	return year >= 1888 && year <= now.Year()+1
}

// ParseRating validates 0..max and rounds to one decimal place.
func ParseRating(v, max float64) (float64, error) {
	if math.IsNaN(v) || v < 0 || v > max {
		return 0, fmt.Errorf("rating must be between 0 and %g", max)
	}
	return math.Round(v*10) / 10, nil
}

// SplitCast turns a comma-separated cast string into a clean slice: each
// entry trimmed and case-folded, empties dropped, duplicates removed with
// first-seen order kept.
func SplitCast(s string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, part := range strings.Split(s, ",") {
		name := text.Fold(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
