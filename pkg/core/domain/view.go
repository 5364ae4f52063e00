package domain

// Action is one affordance a rendered view offers the visitor. Kind is a
// stable machine name the frontend switches on; URI is set when the action
// is a plain navigation.
type Action struct {
	Kind  string `json:"kind"`
	Label string `json:"label"`
	URI   string `json:"uri,omitempty"`
}

// Field is one labeled value on a rendered card.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// View is the structured document a direct-render content type produces.
// Degraded views carry the raw payload so the visitor can at least copy it.
type View struct {
	Kind     string   `json:"kind"`
	Title    string   `json:"title"`
	Fields   []Field  `json:"fields,omitempty"`
	Primary  *Action  `json:"primary_action,omitempty"`
	Actions  []Action `json:"actions,omitempty"`
	Degraded bool     `json:"degraded,omitempty"`
	Raw      string   `json:"raw,omitempty"`
	Branding Branding `json:"branding"`
}
