package types

// Mode represents the current input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSelect
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeSelect:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}
