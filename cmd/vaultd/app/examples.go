package app

import (
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/commands"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/x/cash"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/timelock"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	wallet := &cash.Set{
		Metadata: &vault.Metadata{Schema: 1},
		Coins: []*coin.Coin{
			{Whole: 50000, Ticker: "VLT"},
			{Whole: 150, Fractional: 567000, Ticker: "IOV"},
		},
	}

	priv := crypto.GenPrivKeyEd25519()
	pub := priv.PublicKey()
	user := &sigs.UserData{
		Metadata: &vault.Metadata{Schema: 1},
		Pubkey:   pub,
		Sequence: 17,
	}

	recipient := crypto.GenPrivKeyEd25519().PublicKey().Address()
	amt := coin.NewCoin(250, 0, "VLT")
	msg := &timelock.LockMsg{
		Metadata:     &vault.Metadata{Schema: 1},
		Recipient:    recipient,
		Amount:       &amt,
		LockDuration: vault.AsUnixDuration(7 * 24 * time.Hour),
		Memo:         "vesting tranche",
	}

	lock := &timelock.LockedFund{
		Metadata:  &vault.Metadata{Schema: 1},
		Sender:    pub.Address(),
		Recipient: recipient,
		Holder:    recipient,
		UnlockAt:  vault.UnixTime(1898553600),
		Memo:      "vesting tranche",
		Address:   timelock.Condition([]byte{0, 0, 0, 0, 0, 0, 0, 1}).Address(),
	}

	conf := &timelock.Configuration{
		Metadata:    &vault.Metadata{Schema: 1},
		Holder:      timelock.HolderRecipient,
		CancelError: timelock.CancelErrorDistinct,
	}

	unsigned := Tx{Msg: msg}
	tx := unsigned
	sig, err := sigs.SignTx(priv, &tx, "test-123", 17)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "wallet", Obj: wallet},
		{Filename: "priv_key", Obj: priv},
		{Filename: "pub_key", Obj: pub},
		{Filename: "user", Obj: user},
		{Filename: "lock_msg", Obj: msg},
		{Filename: "locked_fund", Obj: lock},
		{Filename: "configuration", Obj: conf},
		{Filename: "unsigned_tx", Obj: &unsigned},
		{Filename: "signed_tx", Obj: &tx},
	}
}
