package olami

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drewdunne/nlibot/internal/nli"
)

func decodePayload(t *testing.T, raw string) *Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestExtractIntent_FirstMatch(t *testing.T) {
	p := decodePayload(t, `{
		"semantic": [
			{"input": "fly to Taipei", "modifier": ["book_flight"], "slots": [{"name": "city", "value": "Taipei"}]},
			{"modifier": ["other"], "slots": []}
		],
		"desc_obj": {"result": "Booking a flight to Taipei", "status": 0}
	}`)

	intent, err := ExtractIntent(p)
	require.NoError(t, err)

	assert.Equal(t, nli.Intent{
		Input:      "fly to Taipei",
		Response:   "Booking a flight to Taipei",
		Action:     "book_flight",
		Parameters: map[string]string{"city": "Taipei"},
	}, intent)
}

func TestExtractIntent_MissingResult(t *testing.T) {
	p := decodePayload(t, `{
		"semantic": [{"input": "hi", "modifier": ["greet"], "slots": []}],
		"desc_obj": {"status": 0}
	}`)

	intent, err := ExtractIntent(p)
	require.NoError(t, err)
	assert.Equal(t, "", intent.Response)
	assert.Empty(t, intent.Parameters)
}

func TestExtractIntent_NullResult(t *testing.T) {
	p := decodePayload(t, `{
		"semantic": [{"input": "hi", "modifier": ["greet"], "slots": []}],
		"desc_obj": {"result": null}
	}`)

	intent, err := ExtractIntent(p)
	require.NoError(t, err)
	assert.Equal(t, "", intent.Response)
}

func TestExtractIntent_DuplicateSlotLastWins(t *testing.T) {
	p := decodePayload(t, `{
		"semantic": [{"input": "x", "modifier": ["a"], "slots": [
			{"name": "city", "value": "Taipei"},
			{"name": "date", "value": "today"},
			{"name": "city", "value": "Tainan"}
		]}],
		"desc_obj": {}
	}`)

	intent, err := ExtractIntent(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"city": "Tainan", "date": "today"}, intent.Parameters)

	v, ok := intent.Param("city")
	assert.True(t, ok)
	assert.Equal(t, "Tainan", v)
}

func TestExtractIntent_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty semantic", `{"semantic": [], "desc_obj": {}}`},
		{"missing semantic", `{"desc_obj": {}}`},
		{"empty modifier", `{"semantic": [{"input": "x", "modifier": [], "slots": []}], "desc_obj": {}}`},
		{"missing modifier", `{"semantic": [{"input": "x", "slots": []}], "desc_obj": {}}`},
		{"missing input", `{"semantic": [{"modifier": ["a"], "slots": []}], "desc_obj": {}}`},
		{"missing slots", `{"semantic": [{"input": "x", "modifier": ["a"]}], "desc_obj": {}}`},
		{"slot without name", `{"semantic": [{"input": "x", "modifier": ["a"], "slots": [{"value": "v"}]}], "desc_obj": {}}`},
		{"slot without value", `{"semantic": [{"input": "x", "modifier": ["a"], "slots": [{"name": "n"}]}], "desc_obj": {}}`},
		{"slot with null value", `{"semantic": [{"input": "x", "modifier": ["a"], "slots": [{"name": "n", "value": null}]}], "desc_obj": {}}`},
		{"missing desc_obj", `{"semantic": [{"input": "x", "modifier": ["a"], "slots": []}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractIntent(decodePayload(t, tt.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, nli.ErrMalformedResponse)

			var malformed *nli.MalformedResponseError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestExtractIntent_EmptySlotValue(t *testing.T) {
	p := decodePayload(t, `{
		"semantic": [{"input": "x", "modifier": ["a"], "slots": [{"name": "n", "value": ""}]}],
		"desc_obj": {}
	}`)

	intent, err := ExtractIntent(p)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"n": ""}, intent.Parameters)
}

func TestExtractIntent_NilPayload(t *testing.T) {
	_, err := ExtractIntent(nil)
	assert.ErrorIs(t, err, nli.ErrMalformedResponse)
}

func TestDescObj_KeepsExtraFields(t *testing.T) {
	p := decodePayload(t, `{"semantic": [], "desc_obj": {"result": "r", "status": 0, "type": "weather"}}`)
	require.NotNil(t, p.DescObj)
	require.NotNil(t, p.DescObj.Result)
	assert.Equal(t, "r", *p.DescObj.Result)
	require.NotNil(t, p.DescObj.Status)
	assert.Equal(t, 0, *p.DescObj.Status)
	assert.Contains(t, p.DescObj.Extra, "type")
}
