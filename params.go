package adsignal

import (
	"github.com/goliatone/go-adsignal/businessdata"
	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/layering"
	"github.com/goliatone/go-adsignal/serverside"
)

// Params holds one initial value per logical field, in the positional order
// the user data constructor has always used. A nil field is unset.
//
// F5First, F5Last and FI are not part of the primary parameter list; they are
// applied to the server backing after both backings are built.
type Params struct {
	Email           *string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone           *string `json:"phone,omitempty" yaml:"phone,omitempty"`
	FirstName       *string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	LastName        *string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	DateOfBirth     *string `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
	City            *string `json:"city,omitempty" yaml:"city,omitempty"`
	State           *string `json:"state,omitempty" yaml:"state,omitempty"`
	Zip             *string `json:"zip,omitempty" yaml:"zip,omitempty"`
	Country         *string `json:"country,omitempty" yaml:"country,omitempty"`
	ExternalID      *string `json:"external_id,omitempty" yaml:"external_id,omitempty"`
	Gender          *string `json:"gender,omitempty" yaml:"gender,omitempty"`
	ClientIPAddress *string `json:"client_ip_address,omitempty" yaml:"client_ip_address,omitempty"`
	ClientUserAgent *string `json:"client_user_agent,omitempty" yaml:"client_user_agent,omitempty"`
	Fbp             *string `json:"fbp,omitempty" yaml:"fbp,omitempty"`
	Fbc             *string `json:"fbc,omitempty" yaml:"fbc,omitempty"`
	SubscriptionID  *string `json:"subscription_id,omitempty" yaml:"subscription_id,omitempty"`
	FbLoginID       *string `json:"fb_login_id,omitempty" yaml:"fb_login_id,omitempty"`
	LeadID          *string `json:"lead_id,omitempty" yaml:"lead_id,omitempty"`
	Dobd            *string `json:"dobd,omitempty" yaml:"dobd,omitempty"`
	Dobm            *string `json:"dobm,omitempty" yaml:"dobm,omitempty"`
	Doby            *string `json:"doby,omitempty" yaml:"doby,omitempty"`
	F5First         *string `json:"f5first,omitempty" yaml:"f5first,omitempty"`
	F5Last          *string `json:"f5last,omitempty" yaml:"f5last,omitempty"`
	FI              *string `json:"fi,omitempty" yaml:"fi,omitempty"`
	Address         *string `json:"address,omitempty" yaml:"address,omitempty"`
}

// String returns a pointer to v, for populating Params and Patch literals.
func String(v string) *string {
	return &v
}

// StringValue dereferences v, returning "" when nil.
func StringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func (p Params) businessData() businessdata.Params {
	return businessdata.Params{
		Email:       p.Email,
		Phone:       p.Phone,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DateOfBirth: p.DateOfBirth,
		City:        p.City,
		State:       p.State,
		Zip:         p.Zip,
		Country:     p.Country,
		ExternalID:  p.ExternalID,
		Address:     p.Address,
	}
}

func (p Params) server() serverside.Params {
	return serverside.Params{
		Email:           p.Email,
		Phone:           p.Phone,
		Gender:          p.Gender,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		DateOfBirth:     p.DateOfBirth,
		City:            p.City,
		State:           p.State,
		Zip:             p.Zip,
		Country:         p.Country,
		ExternalID:      p.ExternalID,
		ClientIPAddress: p.ClientIPAddress,
		ClientUserAgent: p.ClientUserAgent,
		Fbp:             p.Fbp,
		Fbc:             p.Fbc,
		SubscriptionID:  p.SubscriptionID,
		FbLoginID:       p.FbLoginID,
		LeadID:          p.LeadID,
		Dobd:            p.Dobd,
		Dobm:            p.Dobm,
		Doby:            p.Doby,
	}
}

// Patch returns p as a patch of every non-nil field.
func (p Params) Patch() Patch {
	patch := Patch{}
	for _, entry := range p.entries() {
		if *entry.value != nil {
			patch[entry.name] = *entry.value
		}
	}
	return patch
}

// ParamsFromPatch returns the constructor params carried by patch. Nil
// values and unknown names are dropped.
func ParamsFromPatch(patch Patch) Params {
	var p Params
	for _, entry := range p.entries() {
		if value := patch[entry.name]; value != nil {
			v := *value
			*entry.value = &v
		}
	}
	return p
}

type paramEntry struct {
	name  fields.Name
	value **string
}

func (p *Params) entries() []paramEntry {
	return []paramEntry{
		{fields.Email, &p.Email},
		{fields.Phone, &p.Phone},
		{fields.FirstName, &p.FirstName},
		{fields.LastName, &p.LastName},
		{fields.DateOfBirth, &p.DateOfBirth},
		{fields.City, &p.City},
		{fields.State, &p.State},
		{fields.Zip, &p.Zip},
		{fields.Country, &p.Country},
		{fields.ExternalID, &p.ExternalID},
		{fields.Gender, &p.Gender},
		{fields.ClientIPAddress, &p.ClientIPAddress},
		{fields.ClientUserAgent, &p.ClientUserAgent},
		{fields.Fbp, &p.Fbp},
		{fields.Fbc, &p.Fbc},
		{fields.SubscriptionID, &p.SubscriptionID},
		{fields.FbLoginID, &p.FbLoginID},
		{fields.LeadID, &p.LeadID},
		{fields.Dobd, &p.Dobd},
		{fields.Dobm, &p.Dobm},
		{fields.Doby, &p.Doby},
		{fields.F5First, &p.F5First},
		{fields.F5Last, &p.F5Last},
		{fields.FI, &p.FI},
		{fields.Address, &p.Address},
	}
}

// ApplyDefaults returns params with every unset field filled from defaults.
// Explicitly set fields, including empty strings, are kept.
func ApplyDefaults(params, defaults Params) Params {
	out := params
	fallback := defaults.entries()
	for i, entry := range out.entries() {
		*entry.value = layering.First(*entry.value, *fallback[i].value)
	}
	return out
}
