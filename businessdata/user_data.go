// Package businessdata holds the user data representation consumed by the
// business-data ingestion endpoint.
package businessdata

import (
	"encoding/json"

	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/backing"
)

// Params carries the initial values in constructor order. A nil field is unset.
type Params struct {
	Email       *string
	Phone       *string
	FirstName   *string
	LastName    *string
	DateOfBirth *string
	City        *string
	State       *string
	Zip         *string
	Country     *string
	ExternalID  *string
	Address     *string
}

// UserData is the business-data backing: the shared fields plus the physical
// address.
type UserData struct {
	*backing.Store
}

// NewUserData builds a business-data backing from params.
func NewUserData(params Params) *UserData {
	u := &UserData{Store: backing.New(fields.BackingBusinessData)}
	u.SetValue(fields.Email, params.Email)
	u.SetValue(fields.Phone, params.Phone)
	u.SetValue(fields.FirstName, params.FirstName)
	u.SetValue(fields.LastName, params.LastName)
	u.SetValue(fields.DateOfBirth, params.DateOfBirth)
	u.SetValue(fields.City, params.City)
	u.SetValue(fields.State, params.State)
	u.SetValue(fields.Zip, params.Zip)
	u.SetValue(fields.Country, params.Country)
	u.SetValue(fields.ExternalID, params.ExternalID)
	u.SetValue(fields.Address, params.Address)
	return u
}

// PayloadOption configures payload materialization.
type PayloadOption func(*backing.PayloadOptions)

// WithoutHashing sends normalized values in the clear.
func WithoutHashing() PayloadOption {
	return func(opts *backing.PayloadOptions) {
		opts.SkipHashing = true
	}
}

// Payload returns the user_data parameters expected by the business-data
// endpoint. Every value is a plain string.
func (u *UserData) Payload(opts ...PayloadOption) map[string]any {
	cfg := backing.PayloadOptions{}
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
