package dashboard

import "fmt"

// Status selects which view a dashboard shows.
type Status int

const (
	StatusInitial Status = iota
	StatusLoading
	StatusSuccess
	StatusFailure
)

var statusNames = [...]string{
	StatusInitial: "INITIAL",
	StatusLoading: "LOADING",
	StatusSuccess: "SUCCESS",
	StatusFailure: "FAILURE",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStatus is the inverse of Status.String.
func ParseStatus(name string) (Status, error) {
	for i, n := range statusNames {
		if n == name {
			return Status(i), nil
		}
	}
	return StatusInitial, fmt.Errorf("unknown dashboard status %q", name)
}

// IsTerminal reports whether the fetch cycle has resolved.
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailure
}

// allowed transitions: Initial -> Loading -> {Success, Failure}
func canTransition(from, to Status) bool {
	switch from {
	case StatusInitial:
		return to == StatusLoading
	case StatusLoading:
		return to == StatusSuccess || to == StatusFailure
	default:
		return false
	}
}
