package script

// Kind discriminates the closed set of step variants.
type Kind string

const (
	KindShortText Kind = "short-text"
	KindEmail     Kind = "email"
	KindPhone     Kind = "phone"
	KindLongText  Kind = "long-text"
	KindNumber    Kind = "number"
	KindChoice    Kind = "choice"
)

// Option is one selectable answer on a choice step.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Helper string `json:"helper,omitempty"`
}

// Step is one question in the fixed concierge sequence. Options and
// Multiple are meaningful only when Kind is KindChoice.
type Step struct {
	ID          string   `json:"id"`
	Kind        Kind     `json:"kind"`
	Prompt      string   `json:"prompt"`
	Helper      string   `json:"helper,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
	Multiple    bool     `json:"multiple,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// Choice reports whether the step expects an answer from its option list.
func (s Step) Choice() bool {
	return s.Kind == KindChoice
}
