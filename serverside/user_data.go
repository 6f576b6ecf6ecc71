// Package serverside holds the user data representation consumed by the
// conversions (server-side events) endpoint.
package serverside

import (
	"encoding/json"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/backing"
)

// Params carries the initial values, in the order the conversions user data
// constructor has always accepted them. A nil field is unset.
type Params struct {
	Email           *string
	Phone           *string
	Gender          *string
	FirstName       *string
	LastName        *string
	DateOfBirth     *string
	City            *string
	State           *string
	Zip             *string
	Country         *string
	ExternalID      *string
	ClientIPAddress *string
	ClientUserAgent *string
	Fbp             *string
	Fbc             *string
	SubscriptionID  *string
	FbLoginID       *string
	LeadID          *string
	Dobd            *string
	Dobm            *string
	Doby            *string
}

// UserData is the conversions backing. It declares every shared field plus
// the server-only targeting fields.
type UserData struct {
	*backing.Store
}

// NewUserData builds a conversions backing from params.
func NewUserData(params Params) *UserData {
	u := &UserData{Store: backing.New(fields.BackingServer)}
	u.SetValue(fields.Email, params.Email)
	u.SetValue(fields.Phone, params.Phone)
	u.SetValue(fields.Gender, params.Gender)
	u.SetValue(fields.FirstName, params.FirstName)
	u.SetValue(fields.LastName, params.LastName)
	u.SetValue(fields.DateOfBirth, params.DateOfBirth)
	u.SetValue(fields.City, params.City)
	u.SetValue(fields.State, params.State)
	u.SetValue(fields.Zip, params.Zip)
	u.SetValue(fields.Country, params.Country)
	u.SetValue(fields.ExternalID, params.ExternalID)
	u.SetValue(fields.ClientIPAddress, params.ClientIPAddress)
	u.SetValue(fields.ClientUserAgent, params.ClientUserAgent)
	u.SetValue(fields.Fbp, params.Fbp)
	u.SetValue(fields.Fbc, params.Fbc)
	u.SetValue(fields.SubscriptionID, params.SubscriptionID)
	u.SetValue(fields.FbLoginID, params.FbLoginID)
	u.SetValue(fields.LeadID, params.LeadID)
	u.SetValue(fields.Dobd, params.Dobd)
	u.SetValue(fields.Dobm, params.Dobm)
	u.SetValue(fields.Doby, params.Doby)
	return u
}

// listValued fields are sent as single element arrays, the remaining fields
// as plain strings.
var listValued = map[fields.Name]struct{}{
	fields.Email:       {},
	fields.Phone:       {},
	fields.Gender:      {},
	fields.FirstName:   {},
	fields.LastName:    {},
	fields.DateOfBirth: {},
	fields.City:        {},
	fields.State:       {},
	fields.Zip:         {},
	fields.Country:     {},
	fields.ExternalID:  {},
}

// PayloadOption configures payload materialization.
type PayloadOption func(*backing.PayloadOptions)

// WithoutHashing sends normalized values in the clear.
func WithoutHashing() PayloadOption {
	return func(opts *backing.PayloadOptions) {
		opts.SkipHashing = true
	}
}

// Payload returns the user_data parameters expected by the conversions
// endpoint.
func (u *UserData) Payload(opts ...PayloadOption) map[string]any {
	cfg := backing.PayloadOptions{Wrap: wrapValue}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return u.Store.Payload(cfg)
}

// MarshalJSON encodes the hashed payload.
func (u *UserData) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.Payload())
}

func wrapValue(name fields.Name, value string) any {
	if _, ok := listValued[name]; ok {
		return []string{value}
	}
	return value
}

// ListValued reports whether name is sent as a single element array.
func ListValued(name fields.Name) bool {
	_, ok := listValued[name]
	return ok
}
