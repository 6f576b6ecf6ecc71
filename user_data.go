package adsignal

import (
	"github.com/goliatone/go-adsignal/businessdata"
	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/layering"
	"github.com/goliatone/go-adsignal/serverside"
)

// BusinessData exposes the business-data backing for the business-data
// ingestion client.
func (u *UserData) BusinessData() *businessdata.UserData {
	return u.business
}

// Server exposes the conversions backing for the conversions client.
func (u *UserData) Server() *serverside.UserData {
	return u.server
}

// Value returns the resolved value of name, nil when absent. Single-backing
// fields return that backing's raw value.
func (u *UserData) Value(name fields.Name) *string {
	return Resolve(u.server.Value(name), u.business.Value(name))
}

// Get returns the resolved value of name and whether it is present.
func (u *UserData) Get(name fields.Name) (string, bool) {
	value := u.Value(name)
	if value == nil {
		return "", false
	}
	return *value, true
}

// Has reports whether name resolves to a present value.
func (u *UserData) Has(name fields.Name) bool {
	return u.Value(name) != nil
}

// Set writes value to every backing that declares name and returns u for
// chaining. Unknown names are ignored and reported to the change logger.
func (u *UserData) Set(name fields.Name, value string) *UserData {
	u.write(name, &value)
	return u
}

// Clear marks name absent on every backing that declares it.
func (u *UserData) Clear(name fields.Name) *UserData {
	u.write(name, nil)
	return u
}

// ApplyPatch writes every patched field in registry order. Nil values clear.
func (u *UserData) ApplyPatch(patch Patch) *UserData {
	var applied []fields.Name
	for _, name := range patch.Fields() {
		if u.write(name, patch[name]) {
			applied = append(applied, name)
		}
	}
	if err := u.emitPatch(applied); err != nil {
		u.changeLogger().LogChange(ChangeLogEvent{Op: ChangePatch, Label: u.cfg.label, Err: err})
	}
	return u
}

// Snapshot returns every present resolved value keyed by field name.
func (u *UserData) Snapshot() map[fields.Name]string {
	return layering.MergeMaps(u.server.Values(), u.business.Values())
}

func (u *UserData) write(name fields.Name, value *string) bool {
	op := ChangeSet
	if value == nil {
		op = ChangeClear
	}
	if !name.Valid() {
		u.changeLogger().LogChange(ChangeLogEvent{
			Op:    ChangeIgnored,
			Field: name,
			Label: u.cfg.label,
			Err:   fields.ErrUnknownField,
		})
		return false
	}

	var backings []fields.Backing
	if u.server.SetValue(name, value) {
		backings = append(backings, fields.BackingServer)
	}
	if u.business.SetValue(name, value) {
		backings = append(backings, fields.BackingBusinessData)
	}

	err := u.emitWrite(name, value, backings)
	u.changeLogger().LogChange(ChangeLogEvent{
		Op:       op,
		Field:    name,
		Backings: backings,
		Label:    u.cfg.label,
		Err:      err,
	})
	return true
}

// SetEmail sets the email address.
func (u *UserData) SetEmail(value string) *UserData {
	return u.Set(fields.Email, value)
}

// SetPhone sets the phone number.
func (u *UserData) SetPhone(value string) *UserData {
	return u.Set(fields.Phone, value)
}

// SetFirstName sets the first name.
func (u *UserData) SetFirstName(value string) *UserData {
	return u.Set(fields.FirstName, value)
}

// SetLastName sets the last name.
func (u *UserData) SetLastName(value string) *UserData {
	return u.Set(fields.LastName, value)
}

// SetExternalID sets the advertiser assigned user ID.
func (u *UserData) SetExternalID(value string) *UserData {
	return u.Set(fields.ExternalID, value)
}

// SetClientIPAddress sets the browser IP address. Server backing only.
func (u *UserData) SetClientIPAddress(value string) *UserData {
	return u.Set(fields.ClientIPAddress, value)
}

// SetClientUserAgent sets the browser user agent. Server backing only.
func (u *UserData) SetClientUserAgent(value string) *UserData {
	return u.Set(fields.ClientUserAgent, value)
}

// SetFbp sets the browser ID cookie value. Server backing only.
func (u *UserData) SetFbp(value string) *UserData {
	return u.Set(fields.Fbp, value)
}

// SetFbc sets the click ID cookie value. Server backing only.
func (u *UserData) SetFbc(value string) *UserData {
	return u.Set(fields.Fbc, value)
}

// Params returns the resolved record as constructor params. Building a new
// UserData from them reproduces every resolved value.
func (u *UserData) Params() Params {
	var p Params
	snapshot := u.Snapshot()
	for _, entry := range p.entries() {
		if value, ok := snapshot[entry.name]; ok {
			v := value
			*entry.value = &v
		}
	}
	return p
}
