package party

// Level bounds for a party member.
const (
	MinLevel     = 1
	MaxLevel     = 20
	DefaultLevel = 5
)

// Character is a single party member. Species and Class are display strings.
type Character struct {
	Name    string `json:"name"`
	Level   int    `json:"level"`
	Species string `json:"species,omitempty"`
	Class   string `json:"class,omitempty"`
}
