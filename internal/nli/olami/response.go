package olami

import "encoding/json"

// statusOK is the only status that carries an interpretation.
const statusOK = "ok"

// Result is the top-level response of the service. Data stays raw until the
// status has been checked, since failed responses carry arbitrary data.
type Result struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// resultData is the shape of Data in a successful response.
type resultData struct {
	NLI *Payload `json:"nli"`
}

// Payload is the interpretation section of a response (data.nli).
//
// Optional-looking pointer and raw fields let ExtractIntent tell an absent
// field from an empty one.
type Payload struct {
	Semantic []SemanticCandidate `json:"semantic"`
	DescObj  *DescObj            `json:"desc_obj"`
}

// DescObj holds the service's description of the interpretation.
type DescObj struct {
	Result *string `json:"result"`
	Status *int    `json:"status,omitempty"`

	// Extra keeps fields the client does not interpret.
	Extra map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the known fields and keeps the rest in Extra.
func (d *DescObj) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*d = DescObj{}
	if v, ok := raw["result"]; ok {
		if err := json.Unmarshal(v, &d.Result); err != nil {
			return err
		}
		delete(raw, "result")
	}
	if v, ok := raw["status"]; ok {
		if err := json.Unmarshal(v, &d.Status); err != nil {
			return err
		}
		delete(raw, "status")
	}
	if len(raw) > 0 {
		d.Extra = raw
	}
	return nil
}

// SemanticCandidate is one interpretation proposed by the service.
type SemanticCandidate struct {
	Input    *string  `json:"input"`
	Modifier []string `json:"modifier"`
	Slots    []Slot   `json:"slots"`
	AppName  string   `json:"app,omitempty"`
}

// Slot is a named parameter of a candidate.
type Slot struct {
	Name  *string `json:"name"`
	Value *string `json:"value"`
}
