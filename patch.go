package adsignal

import (
	"errors"
	"sort"

	"github.com/goliatone/go-adsignal/fields"
)

// Patch is a partial user data record. A nil value clears the field.
type Patch map[fields.Name]*string

// Fields returns the patched field names in registry order; unknown names
// sort last, alphabetically.
func (p Patch) Fields() []fields.Name {
	names := make([]fields.Name, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	order := make(map[fields.Name]int, len(names))
	for i, name := range fields.Names() {
		order[name] = i
	}
	sort.Slice(names, func(i, j int) bool {
		oi, iok := order[names[i]]
		oj, jok := order[names[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
	return names
}

// Diff returns the patch turning before into after: changed and added
// fields carry their new value, removed fields clear.
func Diff(before, after map[fields.Name]string) Patch {
	patch := Patch{}
	for name, value := range after {
		if old, ok := before[name]; !ok || old != value {
			patch[name] = String(value)
		}
	}
	for name := range before {
		if _, ok := after[name]; !ok {
			patch[name] = nil
		}
	}
	return patch
}

// PatchFromMap builds a patch from loosely keyed values, accepting canonical
// names or wire keys. Unknown keys are reported through the returned error and
// skipped.
func PatchFromMap(values map[string]*string) (Patch, error) {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	patch := make(Patch, len(values))
	var unknown []error
	for _, key := range keys {
		name, err := fields.Lookup(key)
		if err != nil {
			unknown = append(unknown, err)
			continue
		}
		patch[name] = values[key]
	}
	return patch, errors.Join(unknown...)
}
