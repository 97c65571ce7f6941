package app

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/commands/server"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/migration"
	"github.com/iov-one/vault/x/cash"
	"github.com/iov-one/vault/x/timelock"
	"github.com/iov-one/vault/x/validators"
	"github.com/stellar/go/exp/crypto/derivation"
	abci "github.com/tendermint/tendermint/abci/types"
)

// coinKeyPath is the SLIP-0010 derivation path of the dev account
// when a master seed is given to init.
const coinKeyPath = "m/44'/234'/0'"

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode
//
// Args are optional: [ticker] [address|seed]
// A 20-byte hex value is taken as the address itself, any other hex
// value as a master seed to derive the key from.
func GenInitOptions(args []string) (json.RawMessage, error) {
	ticker := "VLT"
	if len(args) > 0 {
		ticker = args[0]
	}

	var addr string
	if len(args) > 1 {
		a, err := vault.ParseAddress(args[1])
		if err == nil {
			addr = a.String()
		} else {
			seed, err := hex.DecodeString(args[1])
			if err != nil {
				return nil, errors.Wrap(errors.ErrInput, "argument is neither an address nor a hex seed")
			}
			priv, err := DeriveCoinKey(seed, coinKeyPath)
			if err != nil {
				return nil, err
			}
			addr = priv.PublicKey().Address().String()
		}
	} else {
		// if no address provided, auto-generate one
		// and print out a recovery seed
		bz, seed, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = bz.String()
		fmt.Println(seed)
	}

	type (
		dict  map[string]interface{}
		array []interface{}
	)
	collectorAddr, err := hex.DecodeString("3b11c732b8fc1f09beb34031302fe2ab347c5c14")
	if err != nil {
		return nil, errors.Wrap(err, "cannot hex decode collector address")
	}
	return json.Marshal(dict{
		"cash": array{
			dict{
				"address": addr,
				"coins": array{
					dict{
						"whole":  123456789,
						"ticker": ticker,
					},
				},
			},
		},
		"conf": dict{
			"cash": cash.Configuration{
				CollectorAddress: collectorAddr,
				MinimalFee:       coin.Coin{Whole: 0}, // no fee
			},
			"timelock": timelock.Configuration{
				Holder:      timelock.HolderRecipient,
				CancelError: timelock.CancelErrorDistinct,
			},
			"migration": dict{
				"admin": addr,
			},
		},
		"initialize_schema": array{"cash", "sigs", "validators", "timelock"},
	})
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(options *server.Options) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	stack := Stack(options.MinFee)
	application, err := Application("vault", stack, TxDecoder, dbPath, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(app.ChainInitializers(
		&migration.Initializer{},
		&cash.Initializer{},
		&timelock.Initializer{},
		&validators.Initializer{},
	))

	// set the logger and return
	application.WithLogger(options.Logger)
	return application, nil
}

// GenerateCoinKey returns the address of a public key, along with a
// hex encoded seed that recovers the very same key.
// You can give coins to this address and return the seed to the user
// to access them.
func GenerateCoinKey() (vault.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	addr := privKey.PublicKey().Address()
	seed := hex.EncodeToString(privKey.GetEd25519()[:32])
	return addr, seed, nil
}

// DeriveCoinKey deterministically derives a private key from the
// given master seed using the SLIP-0010 path, for example
// "m/44'/234'/0'".
func DeriveCoinKey(seed []byte, path string) (*crypto.PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot derive key: %s", err)
	}
	return crypto.PrivKeyEd25519FromSeed(k.Key), nil
}
