package field

import (
	"errors"
	"fmt"
)

// Visibility controls who can see a field's value on record display pages.
type Visibility int

const (
	// VisibilityHidden hides the field from everyone on display pages.
	// The field is still editable by users with edit permission.
	VisibilityHidden Visibility = 0

	// VisibilityEditors shows the field only to users who can edit the
	// record's custom fields.
	VisibilityEditors Visibility = 1

	// VisibilityEveryone shows the field to anyone who can view the record.
	VisibilityEveryone Visibility = 2
)

func (v Visibility) String() string {
	switch v {
	case VisibilityHidden:
		return "hidden"
	case VisibilityEditors:
		return "editors"
	case VisibilityEveryone:
		return "everyone"
	default:
		return fmt.Sprintf("visibility(%d)", int(v))
	}
}

// ParseVisibility converts a textual visibility tag into a Visibility.
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "hidden":
		return VisibilityHidden, nil
	case "editors":
		return VisibilityEditors, nil
	case "everyone":
		return VisibilityEveryone, nil
	default:
		return 0, errors.Join(ErrUnknownVisibility, fmt.Errorf("tag %q", s))
	}
}

// MarshalText implements encoding.TextMarshaler so visibility serializes
// as its tag in JSON and YAML.
func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Visibility) UnmarshalText(b []byte) error {
	parsed, err := ParseVisibility(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
