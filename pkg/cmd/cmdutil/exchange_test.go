package cmdutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExchange(t *testing.T) {
	_, err := NewExchange("", "secret", "", false)
	assert.Error(t, err)

	_, err = NewExchange("key", "secret", "fast", false)
	assert.Error(t, err)

	ex, err := NewExchange("key", "secret", "10+5/1s", true)
	require.NoError(t, err)
	assert.Equal(t, "https://testnet.binancefuture.com", ex.Client.BaseURL)
}
