package game

// Metadata holds best-effort descriptive fields for a game title. Every
// field is optional; absent fields are simply not offered as hints.
type Metadata struct {
	Developer   string `json:"developer,omitempty"`
	Publisher   string `json:"publisher,omitempty"`
	ReleaseYear string `json:"releaseYear,omitempty"`
	Special     string `json:"special,omitempty"`
}

// Empty reports whether no field carries a value.
func (m Metadata) Empty() bool {
	return m.Developer == "" && m.Publisher == "" && m.ReleaseYear == "" && m.Special == ""
}

// HintType selects which metadata field a hint request reveals.
type HintType string

const (
	HintDeveloper   HintType = "developer"
	HintPublisher   HintType = "publisher"
	HintReleaseYear HintType = "releaseYear"
	HintSpecial     HintType = "special"
)

// ValidHintType reports whether t names a known hint category.
func ValidHintType(t HintType) bool {
	switch t {
	case HintDeveloper, HintPublisher, HintReleaseYear, HintSpecial:
		return true
	}
	return false
}
