package sigs

import (
	"github.com/iov-one/vault/errors"
)

var (
	// ErrInvalidSequence is raised whenever the sequence of a signature
	// does not match the expected value for the account.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
