package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answer struct {
	Phishing string `json:"phishing"`
}

func TestUnmarshalLenient(t *testing.T) {
	var a answer
	require.NoError(t, UnmarshalLenient(`{"phishing":"Yes"}`, &a))
	assert.Equal(t, "Yes", a.Phishing)

	var b answer
	require.NoError(t, UnmarshalLenient("Sure! Here you go:\n```json\n{\"phishing\":\"No\"}\n```", &b))
	assert.Equal(t, "No", b.Phishing)

	var c answer
	assert.Error(t, UnmarshalLenient("no json here", &c))
	assert.Error(t, UnmarshalLenient("{ broken", &c))
}
