package adsignal

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-adsignal/businessdata"
	"github.com/goliatone/go-adsignal/fields"
	"github.com/goliatone/go-adsignal/internal/pii"
	"github.com/goliatone/go-adsignal/serverside"
)

// ErrInvalidValue is reported by Validate for values a backing cannot accept.
var ErrInvalidValue = pii.ErrInvalidValue

// New constructs a UserData from params. Both backings are built from the
// fields they declare; the truncated name fields (f5first, f5last, fi) are
// applied to the server backing once it exists.
func New(params Params, opts ...Option) *UserData {
	cfg := applyOptions(opts)
	u := &UserData{
		business: businessdata.NewUserData(params.businessData()),
		server:   serverside.NewUserData(params.server()),
		cfg:      cfg,
	}
	u.server.SetValue(fields.F5First, params.F5First)
	u.server.SetValue(fields.F5Last, params.F5Last)
	u.server.SetValue(fields.FI, params.FI)
	u.emitCreated()
	return u
}

// Load constructs a UserData and validates the values held by both backings.
func Load(params Params, opts ...Option) (*UserData, error) {
	u := New(params, opts...)
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// WithEvaluator configures the evaluator used by Evaluate and Match.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *config) {
		cfg.evaluator = e
	}
}

// Validate checks every present value against the rules of its field. Errors
// are grouped per backing so a shared field may be reported twice.
func (u *UserData) Validate() error {
	var errs []error
	if err := u.server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", fields.BackingServer, err))
	}
	if err := u.business.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", fields.BackingBusinessData, err))
	}
	return errors.Join(errs...)
}
