package nli

// Intent is the structured interpretation of a piece of input text.
type Intent struct {
	// Input is the text the service interpreted.
	Input string `json:"input"`

	// Response is the human-readable reply suggested by the service.
	// Empty when the service did not provide one.
	Response string `json:"response"`

	// Action is the action label of the chosen interpretation.
	Action string `json:"action"`

	// Parameters holds the named slots of the chosen interpretation.
	Parameters map[string]string `json:"parameters"`
}

// Param returns the value of the named parameter.
func (i Intent) Param(name string) (string, bool) {
	v, ok := i.Parameters[name]
	return v, ok
}
