package olami

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Input types accepted by the service.
const (
	InputTypeSpeech = 0
	InputTypeText   = 1
)

// RequestEnvelope is the JSON document sent as the rq parameter.
type RequestEnvelope struct {
	DataType string       `json:"data_type"`
	Data     EnvelopeData `json:"data"`
}

// EnvelopeData carries the text to interpret.
type EnvelopeData struct {
	InputType int    `json:"input_type"`
	Text      string `json:"text"`
}

// NewEnvelope builds the envelope for the given input type and text.
func NewEnvelope(inputType int, text string) RequestEnvelope {
	return RequestEnvelope{
		DataType: "stt",
		Data: EnvelopeData{
			InputType: inputType,
			Text:      text,
		},
	}
}

// EncodeEnvelope serializes the envelope to compact JSON. HTML characters in
// the text are written as-is.
func EncodeEnvelope(env RequestEnvelope) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return "", fmt.Errorf("marshaling envelope: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// DecodeEnvelope parses an rq value back into an envelope.
func DecodeEnvelope(rq string) (RequestEnvelope, error) {
	var env RequestEnvelope
	if err := json.Unmarshal([]byte(rq), &env); err != nil {
		return RequestEnvelope{}, fmt.Errorf("unmarshaling envelope: %w", err)
	}
	return env, nil
}
