package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodePageToken(t *testing.T) {
	fp, err := Fingerprint(map[string]any{"category": "Travel", "limit": 20})
	require.NoError(t, err)

	token := EncodePageToken(fp, 7, 3)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodePageToken(token)
	require.NoError(t, err)
	assert.Equal(t, PageToken{Fingerprint: fp, Generation: 7, Page: 3}, decoded)
}

func TestDecodePageTokenError(t *testing.T) {
	_, err := DecodePageToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	_, err = DecodePageToken(EncodeMultiFieldToken("p1", "abc"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fields")

	_, err = DecodePageToken(EncodeMultiFieldToken("p1", "abc", "x", "2"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "generation parse")

	_, err = DecodePageToken(EncodeMultiFieldToken("p1", "abc", "1", "0"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "page parse")

	_, err = DecodePageToken(EncodeMultiFieldToken("v0", "abc", "1", "2"))
	assert.Error(t, err, "Unknown versions are rejected")
}

func TestFingerprint_StableAndDistinct(t *testing.T) {
	a, err := Fingerprint(map[string]string{"search": "coffee"})
	require.NoError(t, err)
	b, err := Fingerprint(map[string]string{"search": "coffee"})
	require.NoError(t, err)
	c, err := Fingerprint(map[string]string{"search": "tea"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 24)
}

func TestEncodeMultiFieldToken(t *testing.T) {
	// Test with simple fields
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decodedFields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, fields, decodedFields, "Fields should match after decode")

	// When splitting an empty string with strings.Split, we get a slice with one empty string
	emptyToken := EncodeMultiFieldToken()
	decodedEmpty, err := DecodeMultiFieldToken(emptyToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, []string{""}, decodedEmpty, "Should decode to slice with one empty string")

	specialFields := []string{"field|with|pipes", "field with spaces"}
	decodedSpecial, err := DecodeMultiFieldToken(EncodeMultiFieldToken(specialFields...))
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Len(t, decodedSpecial, 4, "Should split on all pipe characters")
}
