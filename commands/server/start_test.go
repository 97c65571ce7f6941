package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/vault/coin"
)

func TestParseFlagsDefaults(t *testing.T) {
	addr, debug, minFee, err := parseFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, "tcp://localhost:46658", addr)
	assert.False(t, debug)
	assert.True(t, minFee.IsZero())
}

func TestParseFlags(t *testing.T) {
	args := []string{"-bind", "tcp://0.0.0.0:12345", "-min_fee", "0.25 VLT", "-debug"}
	addr, debug, minFee, err := parseFlags(args)
	require.NoError(t, err)
	assert.Equal(t, "tcp://0.0.0.0:12345", addr)
	assert.True(t, debug)
	want := coin.NewCoin(0, 250000000, "VLT")
	assert.Equal(t, want, minFee)
}

func TestParseFlagsBadFee(t *testing.T) {
	_, _, _, err := parseFlags([]string{"-min_fee", "totally bogus"})
	assert.Error(t, err)
}
