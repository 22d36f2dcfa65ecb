package catalog

// Descriptor describes one board column: the human-facing title, the wire
// identifier, and the type that selects serialization rules.
type Descriptor struct {
	Title string `json:"title"`
	ID    string `json:"id"`
	Type  string `json:"type"`
}

// Column types with dedicated wire representations. Anything else is
// stringified.
const (
	TypeStatus   = "status"
	TypeDate     = "date"
	TypePeople   = "people"
	TypeNumeric  = "numeric"
	TypeLink     = "link"
	TypeLongText = "long_text"
	TypeText     = "text"
)
