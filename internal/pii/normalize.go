// Package pii normalizes and hashes user data values before they leave the
// process. Both backing representations materialize their payloads through it.
package pii

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/goliatone/go-adsignal/fields"
)

var lower = cases.Lower(language.Und)

// Normalize converts value into the canonical form expected for field name.
// Values that already look like SHA-256 digests are returned lowercased and
// otherwise untouched.
func Normalize(name fields.Name, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if IsHashed(value) {
		return strings.ToLower(value)
	}

	switch name {
	case fields.Email:
		return lower.String(value)
	case fields.Phone, fields.DateOfBirth, fields.Dobd, fields.Dobm, fields.Doby:
		return digitsOnly(value)
	case fields.FirstName, fields.LastName, fields.City:
		return lettersOnly(value)
	case fields.F5First, fields.F5Last:
		return truncate(lettersOnly(value), 5)
	case fields.FI:
		return truncate(lettersOnly(value), 1)
	case fields.State, fields.Country:
		return asciiLettersOnly(value)
	case fields.Zip:
		return normalizeZip(value)
	case fields.Gender:
		return normalizeGender(value)
	case fields.Address:
		return strings.Join(strings.Fields(lower.String(value)), " ")
	default:
		return value
	}
}

func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// lettersOnly lowercases, folds to NFC and drops anything that is not a letter.
func lettersOnly(value string) string {
	value = norm.NFC.String(lower.String(value))
	var b strings.Builder
	for _, r := range value {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func asciiLettersOnly(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(value string, n int) string {
	runes := []rune(value)
	if len(runes) <= n {
		return value
	}
	return string(runes[:n])
}

func normalizeZip(value string) string {
	value = strings.ToLower(strings.ReplaceAll(value, " ", ""))
	if head, _, ok := strings.Cut(value, "-"); ok {
		return head
	}
	return value
}

func normalizeGender(value string) string {
	switch strings.ToLower(value) {
	case "f", "female":
		return "f"
	case "m", "male":
		return "m"
	default:
		return strings.ToLower(value)
	}
}
