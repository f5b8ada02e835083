package core

// Record is one entry of the known-URL list.
type Record struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// Kind tags the current CheckState.
type Kind int

const (
	Idle Kind = iota
	InvalidFormat
	Checking
	Found
	NotFound
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case InvalidFormat:
		return "invalid_format"
	case Checking:
		return "checking"
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// CheckState is the outcome shown for the current input.
// Type is only set when Kind is Found.
type CheckState struct {
	Kind Kind
	Type string
}

func IdleState() CheckState          { return CheckState{Kind: Idle} }
func InvalidFormatState() CheckState { return CheckState{Kind: InvalidFormat} }
func CheckingState() CheckState      { return CheckState{Kind: Checking} }
func NotFoundState() CheckState      { return CheckState{Kind: NotFound} }

func FoundState(typ string) CheckState {
	return CheckState{Kind: Found, Type: typ}
}

func (s CheckState) String() string {
	if s.Kind == Found {
		return "found(" + s.Type + ")"
	}
	return s.Kind.String()
}

// IsError reports whether the state is rendered as an error label.
func (s CheckState) IsError() bool {
	return s.Kind == InvalidFormat || s.Kind == NotFound
}

// Message renders the user-facing text for input in this state.
func (s CheckState) Message(input string) string {
	switch s.Kind {
	case InvalidFormat:
		return "Invalid URL format"
	case NotFound:
		return "Invalid URL, URL does not exist!"
	case Found:
		return input + " exists, it is a " + s.Type
	case Checking:
		return "Checking..."
	default:
		return ""
	}
}
