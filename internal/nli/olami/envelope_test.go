package olami

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEnvelope_Compact(t *testing.T) {
	rq, err := EncodeEnvelope(NewEnvelope(InputTypeText, "fly to Taipei"))
	require.NoError(t, err)
	assert.Equal(t, `{"data_type":"stt","data":{"input_type":1,"text":"fly to Taipei"}}`, rq)
}

func TestEncodeEnvelope_NoHTMLEscaping(t *testing.T) {
	rq, err := EncodeEnvelope(NewEnvelope(InputTypeText, "a<b & c>d"))
	require.NoError(t, err)
	assert.Equal(t, `{"data_type":"stt","data":{"input_type":1,"text":"a<b & c>d"}}`, rq)
}

func TestEncodeEnvelope_RoundTrip(t *testing.T) {
	for _, inputType := range []int{InputTypeSpeech, InputTypeText} {
		for _, text := range []string{"", "今天天氣如何", `quote " and \ backslash`, "<script>&amp;</script>"} {
			env := NewEnvelope(inputType, text)

			rq, err := EncodeEnvelope(env)
			require.NoError(t, err)

			decoded, err := DecodeEnvelope(rq)
			require.NoError(t, err)
			assert.Equal(t, env, decoded)
		}
	}
}

func TestDecodeEnvelope_Invalid(t *testing.T) {
	_, err := DecodeEnvelope("{not json")
	assert.Error(t, err)
}
