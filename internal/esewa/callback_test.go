package esewa

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		original := validPayload()

		raw, err := json.Marshal(original)
		require.NoError(t, err)
		encoded := base64.StdEncoding.EncodeToString(raw)

		decoded, err := DecodePayload(encoded)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("MalformedBase64", func(t *testing.T) {
		_, err := DecodePayload("not-base64!!!")
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte(`{invalid-json`))
		_, err := DecodePayload(encoded)
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		_, err := DecodePayload("")
		assert.Error(t, err)
	})
}
