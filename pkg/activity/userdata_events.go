package activity

import (
	"strings"
	"time"
)

// Verbs emitted for user data lifecycle events.
const (
	VerbUserDataCreated = "userdata.created"
	VerbFieldSet        = "userdata.field.set"
	VerbFieldCleared    = "userdata.field.cleared"
	VerbPatchApplied    = "userdata.patch.applied"
)

// ObjectTypeUserData is the object type attached to every user data event.
const ObjectTypeUserData = "userdata"

// Subject identifies who a user data record belongs to and who changed it.
type Subject struct {
	ActorID  string
	UserID   string
	TenantID string
	ObjectID string
}

// UserDataEventInput describes the common fields for user data events.
// Values never travel in clear text; callers pass a digest of the normalized
// value instead.
type UserDataEventInput struct {
	Subject        Subject
	Label          string
	Channel        string
	DefinitionCode string
	Field          string
	Backings       []string
	ValueDigest    string
	Fields         []string
	Metadata       map[string]any
	OccurredAt     time.Time
}

// BuildUserDataCreatedEvent constructs an event for a newly built record.
func BuildUserDataCreatedEvent(input UserDataEventInput) Event {
	return buildUserDataEvent(VerbUserDataCreated, input)
}

// BuildFieldSetEvent constructs an event for a field write.
func BuildFieldSetEvent(input UserDataEventInput) Event {
	return buildUserDataEvent(VerbFieldSet, input)
}

// BuildFieldClearedEvent constructs an event for a field cleared on every
// backing that declares it.
func BuildFieldClearedEvent(input UserDataEventInput) Event {
	return buildUserDataEvent(VerbFieldCleared, input)
}

// BuildPatchAppliedEvent constructs an event summarizing a batch update.
func BuildPatchAppliedEvent(input UserDataEventInput) Event {
	return buildUserDataEvent(VerbPatchApplied, input)
}

func buildUserDataEvent(verb string, input UserDataEventInput) Event {
	metadata := cloneMap(input.Metadata)
	if input.Field != "" {
		metadata = ensureMetadata(metadata)
		metadata["field"] = input.Field
	}
	if len(input.Backings) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["backings"] = append([]string{}, input.Backings...)
	}
	if input.ValueDigest != "" {
		metadata = ensureMetadata(metadata)
		metadata["value_sha256"] = input.ValueDigest
	}
	if len(input.Fields) > 0 {
		metadata = ensureMetadata(metadata)
		metadata["fields"] = append([]string{}, input.Fields...)
	}
	if input.Label != "" {
		metadata = ensureMetadata(metadata)
		metadata["label"] = input.Label
	}

	objectID := strings.TrimSpace(input.Subject.ObjectID)
	if objectID == "" {
		objectID = strings.TrimSpace(input.Label)
	}
	if objectID == "" {
		objectID = ObjectTypeUserData
	}

	return Event{
		Verb:           verb,
		ActorID:        strings.TrimSpace(input.Subject.ActorID),
		UserID:         strings.TrimSpace(input.Subject.UserID),
		TenantID:       strings.TrimSpace(input.Subject.TenantID),
		ObjectType:     ObjectTypeUserData,
		ObjectID:       objectID,
		Channel:        strings.TrimSpace(input.Channel),
		DefinitionCode: strings.TrimSpace(input.DefinitionCode),
		Metadata:       metadata,
		OccurredAt:     input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
