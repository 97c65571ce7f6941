package app

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/codec"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/x/cash"
	"github.com/iov-one/vault/x/sigs"
)

func init() {
	codec.RegisterConcrete(&Tx{}, "vaultd/Tx")
}

// Tx is the transaction envelope of the node. It carries one message
// together with the fee declaration and the signatures authorizing it.
type Tx struct {
	Fees       *cash.FeeInfo        `json:"fees,omitempty"`
	Signatures []*sigs.StdSignature `json:"signatures,omitempty"`
	Msg        vault.Msg            `json:"msg"`
}

// make sure tx fulfills all interfaces
var _ vault.Tx = (*Tx)(nil)
var _ cash.FeeTx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (vault.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// GetMsg returns the message the envelope carries
func (tx *Tx) GetMsg() (vault.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "transaction without a message")
	}
	return tx.Msg, nil
}

// GetFees returns the fee declaration, or nil if none was attached
func (tx *Tx) GetFees() *cash.FeeInfo {
	return tx.Fees
}

// GetSignatures returns the signature of signers who signed the Msg
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. The sign bytes only come
// from the transaction data itself, not previous signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	s := tx.Signatures
	tx.Signatures = nil

	bz, err := tx.Marshal()

	// reset the signatures after calculating the bytes
	tx.Signatures = s
	return bz, err
}

func (tx *Tx) Marshal() ([]byte, error) {
	return codec.Marshal(tx)
}

func (tx *Tx) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, tx)
}
