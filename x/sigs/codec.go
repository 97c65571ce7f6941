package sigs

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/codec"
	"github.com/iov-one/vault/crypto"
)

func init() {
	codec.RegisterConcrete(&UserData{}, "vault/sigs/UserData")
	codec.RegisterConcrete(&StdSignature{}, "vault/sigs/StdSignature")
	codec.RegisterConcrete(&BumpSequenceMsg{}, "vault/sigs/bump_sequence_msg")
}

// UserData is the stored state for one account holding a public key and the
// replay protection sequence.
type UserData struct {
	Metadata *vault.Metadata   `json:"metadata"`
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

func (u *UserData) GetMetadata() *vault.Metadata {
	if u == nil {
		return nil
	}
	return u.Metadata
}

func (u *UserData) GetPubkey() *crypto.PublicKey {
	if u == nil {
		return nil
	}
	return u.Pubkey
}

func (u *UserData) GetSequence() int64 {
	if u == nil {
		return 0
	}
	return u.Sequence
}

func (u *UserData) Marshal() ([]byte, error) {
	return codec.Marshal(u)
}

func (u *UserData) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, u)
}

// StdSignature represents the signature, the identity of the signer
// (the Pubkey), and a sequence number to prevent replay attacks.
//
// A given signer must submit transactions with the sequence number
// increasing by 1 each time (starting at 0)
type StdSignature struct {
	Sequence  int64             `json:"sequence"`
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature *crypto.Signature `json:"signature"`
}

func (s *StdSignature) GetSequence() int64 {
	if s == nil {
		return 0
	}
	return s.Sequence
}

func (s *StdSignature) GetPubkey() *crypto.PublicKey {
	if s == nil {
		return nil
	}
	return s.Pubkey
}

func (s *StdSignature) GetSignature() *crypto.Signature {
	if s == nil {
		return nil
	}
	return s.Signature
}

func (s *StdSignature) Marshal() ([]byte, error) {
	return codec.Marshal(s)
}

func (s *StdSignature) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, s)
}

// BumpSequenceMsg increments a sequence counter of the user.
type BumpSequenceMsg struct {
	Metadata *vault.Metadata `json:"metadata"`
	// User is the address of the user that sequence is to be incremented.
	// The user must sign the transaction.
	User vault.Address `json:"user"`
	// Increment is the value the user sequence counter is incremented by.
	// Minimal valid value is one as each transaction bumps the sequence
	// already.
	Increment uint32 `json:"increment"`
}

func (msg *BumpSequenceMsg) GetMetadata() *vault.Metadata {
	if msg == nil {
		return nil
	}
	return msg.Metadata
}

func (msg *BumpSequenceMsg) Marshal() ([]byte, error) {
	return codec.Marshal(msg)
}

func (msg *BumpSequenceMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, msg)
}
