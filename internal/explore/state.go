package explore

// State is the lifecycle phase of the current lookup.
type State int

const (
	Idle State = iota
	Searching
	PartiallyPopulated
	FullyPopulated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Searching:
		return "Searching"
	case PartiallyPopulated:
		return "PartiallyPopulated"
	case FullyPopulated:
		return "FullyPopulated"
	default:
		return "Unknown"
	}
}

// Result is the progressively enriched view model for one lookup. Fields
// populate monotonically: each merge replaces the struct wholesale with
// strictly more complete data, never reverting a field to empty.
type Result struct {
	Translation           string
	Definition            string
	Story                 string
	DefinitionTranslation string
	StoryTranslation      string
}
