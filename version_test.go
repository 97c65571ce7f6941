package vault_test

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/stretchr/testify/assert"
)

func TestVersion(t *testing.T) {
	vault.GitCommit = ""
	assert.Equal(t, "v0.1.0", vault.Version())

	vault.GitCommit = "12345678"
	assert.Equal(t, "v0.1.0 12345678", vault.Version())
}
