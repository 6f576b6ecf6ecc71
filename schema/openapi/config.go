package openapi

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-adsignal/fields"
)

// ErrInvalidDocument is wrapped by every settings check failure.
var ErrInvalidDocument = errors.New("openapi: invalid document")

// Endpoint is the HTTP operation that accepts one backing's payload.
type Endpoint struct {
	Path        string
	Method      string
	OperationID string
	Summary     string
}

func (e Endpoint) merge(override Endpoint) Endpoint {
	if override.Path != "" {
		e.Path = override.Path
	}
	if override.Method != "" {
		e.Method = strings.ToLower(override.Method)
	}
	if override.OperationID != "" {
		e.OperationID = override.OperationID
	}
	if override.Summary != "" {
		e.Summary = override.Summary
	}
	return e
}

// DefaultEndpoints returns the ingestion endpoints the generator documents
// unless told otherwise.
func DefaultEndpoints() map[fields.Backing]Endpoint {
	return map[fields.Backing]Endpoint{
		fields.BackingServer:       {Path: "/{pixel_id}/events", Method: "post", OperationID: "sendEvents"},
		fields.BackingBusinessData: {Path: "/{page_id}/business_data", Method: "post", OperationID: "sendBusinessData"},
	}
}

type settings struct {
	openAPI     string
	title       string
	version     string
	description string
	contentType string
	endpoints   map[fields.Backing]Endpoint
	// responses maps status codes to descriptions.
	responses map[string]string
}

func defaultSettings() settings {
	return settings{
		openAPI:     "3.0.3",
		title:       "User Data Payloads",
		version:     "1.0.0",
		contentType: "application/json",
		endpoints:   DefaultEndpoints(),
		responses:   map[string]string{"200": "OK"},
	}
}

// check rejects settings that cannot produce a usable document.
func (s settings) check() error {
	var errs []error
	if s.openAPI == "" {
		errs = append(errs, errors.New("missing openapi version"))
	}
	if s.title == "" || s.version == "" {
		errs = append(errs, errors.New("info needs title and version"))
	}
	if len(s.responses) == 0 {
		errs = append(errs, errors.New("no responses configured"))
	}
	seen := map[string]fields.Backing{}
	for _, backing := range backings {
		endpoint, ok := s.endpoints[backing]
		if !ok {
			continue
		}
		if endpoint.Path == "" {
			errs = append(errs, fmt.Errorf("%s endpoint has no path", backing))
			continue
		}
		route := endpoint.method() + " " + endpoint.Path
		if other, dup := seen[route]; dup {
			errs = append(errs, fmt.Errorf("%s and %s share %s", other, backing, route))
		}
		seen[route] = backing
	}
	if len(seen) == 0 && len(errs) == 0 {
		errs = append(errs, errors.New("no endpoints configured"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, errors.Join(errs...))
	}
	return nil
}

func (s settings) statuses() []string {
	out := make([]string, 0, len(s.responses))
	for status := range s.responses {
		out = append(out, status)
	}
	sort.Strings(out)
	return out
}

func (e Endpoint) method() string {
	if e.Method == "" {
		return "post"
	}
	return e.Method
}

// GeneratorOption configures the generator.
type GeneratorOption func(*settings)

// WithOpenAPIVersion overrides the document version, 3.0.3 by default.
func WithOpenAPIVersion(version string) GeneratorOption {
	return func(s *settings) {
		if version != "" {
			s.openAPI = version
		}
	}
}

// WithInfo sets the info block. Empty arguments keep the defaults.
func WithInfo(title, version, description string) GeneratorOption {
	return func(s *settings) {
		if title != "" {
			s.title = title
		}
		if version != "" {
			s.version = version
		}
		if description != "" {
			s.description = description
		}
	}
}

// WithEndpoint overrides the non-empty parts of backing's endpoint.
func WithEndpoint(backing fields.Backing, endpoint Endpoint) GeneratorOption {
	return func(s *settings) {
		s.endpoints[backing] = s.endpoints[backing].merge(endpoint)
	}
}

// WithoutEndpoint leaves backing's endpoint out of the paths. Its schema
// component is still emitted.
func WithoutEndpoint(backing fields.Backing) GeneratorOption {
	return func(s *settings) {
		delete(s.endpoints, backing)
	}
}

// WithContentType sets the request body media type.
func WithContentType(contentType string) GeneratorOption {
	return func(s *settings) {
		if contentType != "" {
			s.contentType = contentType
		}
	}
}

// WithResponse documents an extra status code on every endpoint.
func WithResponse(status, description string) GeneratorOption {
	return func(s *settings) {
		if status != "" {
			s.responses[status] = description
		}
	}
}
