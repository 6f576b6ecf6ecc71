// Package fields is the closed registry of logical user data fields shared by
// the conversions (server) and business-data ingestion payloads.
//
// The table is fixed at build time. It records, for every field, the canonical
// name used by callers, the key sent on the wire, which backing representations
// declare the field and whether the wire value is hashed.
package fields

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownField indicates a name that is not part of the registry.
var ErrUnknownField = errors.New("fields: unknown field")

// Name is the canonical name of a logical user data field.
type Name string

// Registry entries, in the positional order used by the user data constructor.
const (
	Email           Name = "email"
	Phone           Name = "phone"
	FirstName       Name = "first_name"
	LastName        Name = "last_name"
	DateOfBirth     Name = "date_of_birth"
	City            Name = "city"
	State           Name = "state"
	Zip             Name = "zip"
	Country         Name = "country"
	ExternalID      Name = "external_id"
	Gender          Name = "gender"
	ClientIPAddress Name = "client_ip_address"
	ClientUserAgent Name = "client_user_agent"
	Fbp             Name = "fbp"
	Fbc             Name = "fbc"
	SubscriptionID  Name = "subscription_id"
	FbLoginID       Name = "fb_login_id"
	LeadID          Name = "lead_id"
	Dobd            Name = "dobd"
	Dobm            Name = "dobm"
	Doby            Name = "doby"
	F5First         Name = "f5first"
	F5Last          Name = "f5last"
	FI              Name = "fi"
	Address         Name = "address"
)

// Category groups fields by the backings that declare them.
type Category int

const (
	// CategoryUnknown is returned for names outside the registry.
	CategoryUnknown Category = iota
	// CategoryShared fields are declared by both backings.
	CategoryShared
	// CategoryServerOnly fields are declared only by the conversions backing.
	CategoryServerOnly
	// CategoryBusinessDataOnly fields are declared only by the business-data backing.
	CategoryBusinessDataOnly
)

func (c Category) String() string {
	switch c {
	case CategoryShared:
		return "shared"
	case CategoryServerOnly:
		return "server_only"
	case CategoryBusinessDataOnly:
		return "business_data_only"
	default:
		return "unknown"
	}
}

// MarshalText renders the category by name in JSON and YAML output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Backing names one of the two backing representations.
type Backing string

const (
	BackingServer       Backing = "server"
	BackingBusinessData Backing = "business_data"
)

// Info describes one registry entry.
type Info struct {
	Name        Name     `json:"name" yaml:"name"`
	WireKey     string   `json:"wire_key" yaml:"wire_key"`
	Category    Category `json:"category" yaml:"category"`
	Hashed      bool     `json:"hashed" yaml:"hashed"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// DeclaredBy reports whether backing b carries the field.
func (i Info) DeclaredBy(b Backing) bool {
	switch i.Category {
	case CategoryShared:
		return b == BackingServer || b == BackingBusinessData
	case CategoryServerOnly:
		return b == BackingServer
	case CategoryBusinessDataOnly:
		return b == BackingBusinessData
	default:
		return false
	}
}

var registry = [...]Info{
	{Email, "em", CategoryShared, true, "An email address, in lowercase."},
	{Phone, "ph", CategoryShared, true, "A phone number with country code, area code and number, digits only."},
	{FirstName, "fn", CategoryShared, true, "A first name in lowercase."},
	{LastName, "ln", CategoryShared, true, "A last name in lowercase."},
	{DateOfBirth, "db", CategoryShared, true, "A date of birth in YYYYMMDD format."},
	{City, "ct", CategoryShared, true, "A city in lowercase without spaces or punctuation."},
	{State, "st", CategoryShared, true, "A two-letter state code in lowercase."},
	{Zip, "zp", CategoryShared, true, "A postal code following the country standard."},
	{Country, "country", CategoryShared, true, "A two-letter country code in lowercase."},
	{ExternalID, "external_id", CategoryShared, true, "Any unique ID from the advertiser."},
	{Gender, "ge", CategoryServerOnly, true, "Gender in lowercase, f or m."},
	{ClientIPAddress, "client_ip_address", CategoryServerOnly, false, "IP address of the browser for the event."},
	{ClientUserAgent, "client_user_agent", CategoryServerOnly, false, "User agent of the browser for the event."},
	{Fbp, "fbp", CategoryServerOnly, false, "Browser ID stored in the _fbp cookie."},
	{Fbc, "fbc", CategoryServerOnly, false, "Click ID stored in the _fbc cookie."},
	{SubscriptionID, "subscription_id", CategoryServerOnly, false, "Subscription ID for the user in this transaction."},
	{FbLoginID, "fb_login_id", CategoryServerOnly, false, "Login ID for the user."},
	{LeadID, "lead_id", CategoryServerOnly, false, "ID associated with a lead generated by Lead Ads."},
	{Dobd, "dobd", CategoryServerOnly, true, "Date of birth day in DD format."},
	{Dobm, "dobm", CategoryServerOnly, true, "Date of birth month in MM format."},
	{Doby, "doby", CategoryServerOnly, true, "Date of birth year in YYYY format."},
	{F5First, "f5first", CategoryServerOnly, true, "First 5 characters of the first name."},
	{F5Last, "f5last", CategoryServerOnly, true, "First 5 characters of the last name."},
	{FI, "fi", CategoryServerOnly, true, "First name initial."},
	{Address, "addr", CategoryBusinessDataOnly, true, "A physical address."},
}

var (
	byName    = make(map[Name]int, len(registry))
	byWireKey = make(map[string]int, len(registry))
)

func init() {
	for i, info := range registry {
		byName[info.Name] = i
		byWireKey[info.WireKey] = i
	}
}

// All returns a copy of every registry entry in constructor order.
func All() []Info {
	out := make([]Info, len(registry))
	copy(out, registry[:])
	return out
}

// Names returns every canonical name in constructor order.
func Names() []Name {
	out := make([]Name, len(registry))
	for i, info := range registry {
		out[i] = info.Name
	}
	return out
}

// InCategory returns the names belonging to category c.
func InCategory(c Category) []Name {
	var out []Name
	for _, info := range registry {
		if info.Category == c {
			out = append(out, info.Name)
		}
	}
	return out
}

// DeclaredBy returns the names carried by backing b, in constructor order.
func DeclaredBy(b Backing) []Name {
	var out []Name
	for _, info := range registry {
		if info.DeclaredBy(b) {
			out = append(out, info.Name)
		}
	}
	return out
}

// InfoFor returns the registry entry for n.
func InfoFor(n Name) (Info, bool) {
	i, ok := byName[n]
	if !ok {
		return Info{}, false
	}
	return registry[i], true
}

// Lookup resolves a canonical name or a wire key, ignoring case and
// surrounding whitespace.
func Lookup(value string) (Name, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if i, ok := byName[Name(key)]; ok {
		return registry[i].Name, nil
	}
	if i, ok := byWireKey[key]; ok {
		return registry[i].Name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, value)
}

// Valid reports whether n is part of the registry.
func (n Name) Valid() bool {
	_, ok := byName[n]
	return ok
}

// Category returns the category of n, CategoryUnknown when not registered.
func (n Name) Category() Category {
	info, ok := InfoFor(n)
	if !ok {
		return CategoryUnknown
	}
	return info.Category
}

// WireKey returns the parameter key sent to the ingestion endpoints.
func (n Name) WireKey() string {
	info, ok := InfoFor(n)
	if !ok {
		return ""
	}
	return info.WireKey
}

func (n Name) String() string {
	return string(n)
}
