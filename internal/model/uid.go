package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UID is a validated unique identifier. The canonical form is the lowercase
// hyphenated 36-character UUID representation; any UUID version is accepted
// on parse, generation always produces v4.
type UID string

// ParseUID validates and canonicalizes a UUID string.
func ParseUID(value string) (UID, *FieldError) {
	parsed, err := uuid.Parse(value)
	if err != nil {
		return "", InvalidFormat("id", fmt.Sprintf("invalid UUID: %q", value))
	}
	return UID(parsed.String()), nil
}

// NewUID generates a fresh random identifier.
func NewUID() UID {
	return UID(uuid.New().String())
}

func (u UID) String() string { return string(u) }

// UnmarshalJSON validates incoming identifiers.
func (u *UID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, ferr := ParseUID(s)
	if ferr != nil {
		return fmt.Errorf("%s", ferr.Message)
	}
	*u = parsed
	return nil
}
