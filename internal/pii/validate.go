package pii

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-adsignal/fields"
)

// ErrInvalidValue indicates a value that cannot be normalized for its field.
var ErrInvalidValue = errors.New("pii: invalid value")

// Validate checks value against the shape expected for name. Hashed values
// and fields without a known shape always pass.
func Validate(name fields.Name, value string) error {
	raw := strings.TrimSpace(value)
	if raw == "" || IsHashed(raw) {
		return nil
	}
	normalized := Normalize(name, raw)

	var ok bool
	switch name {
	case fields.Email:
		ok = validEmail(normalized)
	case fields.Phone:
		ok = len(normalized) >= 7
	case fields.Gender:
		ok = normalized == "f" || normalized == "m"
	case fields.DateOfBirth:
		_, err := time.Parse("20060102", normalized)
		ok = err == nil
	case fields.Dobd:
		ok = inRange(normalized, 2, 1, 31)
	case fields.Dobm:
		ok = inRange(normalized, 2, 1, 12)
	case fields.Doby:
		ok = inRange(normalized, 4, 1900, 9999)
	case fields.Country:
		ok = len(normalized) == 2
	case fields.ClientIPAddress:
		ok = net.ParseIP(normalized) != nil
	default:
		ok = true
	}
	if !ok {
		return fmt.Errorf("%w: %s=%q", ErrInvalidValue, name, value)
	}
	return nil
}

func validEmail(value string) bool {
	local, domain, ok := strings.Cut(value, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return false
	}
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

func inRange(value string, width, lo, hi int) bool {
	if len(value) != width {
		return false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	return n >= lo && n <= hi
}
