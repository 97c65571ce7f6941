package vaulttest

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/crypto"
)

func NewKey() crypto.Signer {
	return crypto.GenPrivKeyEd25519()
}

func NewCondition() vault.Condition {
	return NewKey().PublicKey().Condition()
}
