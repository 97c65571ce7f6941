package vaulttest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is implemented by both *testing.T and *testing.B. Use it instead of
// the pointer type to allow notation to accept both objects.
type Tester interface {
	Helper()
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// VaultRunner provides a translation layer between an ABCI interface and a
// vault application. It takes care of serializing messages and creating
// blocks.
type VaultRunner struct {
	chainID string
	height  int64
	t       Tester
	app     abci.Application
}

// NewVaultRunner creates a VaultRunner instance that can be used to process
// deliver and check transaction requests using vault API. This runner expects
// all operations to succeed. Any error results in test failure.
func NewVaultRunner(t Tester, app abci.Application, chainID string) *VaultRunner {
	return &VaultRunner{
		chainID: chainID,
		height:  0,
		t:       t,
		app:     app,
	}
}

// VaultApp is implemented by a vault application. This is the minimal
// interface required by the VaultRunner to be able to connect ABCI and vault
// APIs together.
type VaultApp interface {
	DeliverTx(vault.Tx) error
	CheckTx(vault.Tx) error
	// we also allow standard queries... wrap into a bucket for ease of use
	vault.ReadOnlyKVStore
}

var _ VaultApp = (*VaultRunner)(nil)

// InitChain serialize to JSON given genesis and loads it. Loading a genesis is
// causing a block creation.
func (w *VaultRunner) InitChain(genesis interface{}) {
	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		w.t.Fatalf("cannot JSON serialize genesis: %s", err)
	}

	// Load the genesis in a separate block.
	changed := w.InBlock(func(VaultApp) error {
		w.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       w.chainID,
			AppStateBytes: raw,
		})
		return nil
	})

	if !changed {
		w.t.Fatalf("genesis did not change the state")
	}
}

// CheckTx translates given vault transaction into ABCI interface and executes.
func (w *VaultRunner) CheckTx(tx vault.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	if resp := w.app.CheckTx(raw); resp.Code != 0 {
		return fmt.Errorf("%d: %s", resp.Code, resp.Log)
	}
	return nil
}

// DeliverTx translates given vault transaction into ABCI interface and
// executes.
func (w *VaultRunner) DeliverTx(tx vault.Tx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	if resp := w.app.DeliverTx(raw); resp.Code != 0 {
		return fmt.Errorf("%d: %s", resp.Code, resp.Log)
	}
	return nil
}

// InBlock begins a block and runs given function. All transactions executed
// withing given function are part of newly created block. Upon success the
// block is finished and changes commited.
// InBlock returns true if the application state was modified. It returns true
// if creating new block did not modify the state.
//
// Any failure is ending the test instantly.
func (w *VaultRunner) InBlock(executeTx func(VaultApp) error) bool {
	w.t.Helper()

	w.height++

	initialHash := w.app.Info(abci.RequestInfo{}).LastBlockAppHash

	// BeginBlock will panic on error.
	w.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: w.chainID,
			Height:  w.height,
		},
	})

	if err := executeTx(w); err != nil {
		w.t.Fatalf("operation failed with %+v", err)
	}

	// EndBlock returns Validator diffs mainly,
	// but not important for benchmarks just tests
	w.app.EndBlock(abci.RequestEndBlock{
		Height: w.height,
	})

	// Commit data contains the new app hash. It differs from the initial
	// hash only if the state was modified.
	finalHash := w.app.Commit().Data
	return !bytes.Equal(initialHash, finalHash)
}

var _ vault.ReadOnlyKVStore = (*VaultRunner)(nil)

func (w *VaultRunner) Get(key []byte) ([]byte, error) {
	query := w.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	// if only the interface supported returning errors....
	if query.Code != 0 {
		panic(query.Log)
	}
	// TODO: avoid importing app
	var value app.ResultSet
	err := value.Unmarshal(query.Value)
	if err != nil {
		// oh, for an error return here...
		panic(errors.Wrap(err, "cannot parse values"))
	}

	if len(value.Results) == 0 {
		return nil, nil
	}
	// TODO: assert error if len > 1 ???
	return value.Results[0], nil
}

func (w *VaultRunner) Has(key []byte) (bool, error) {
	value, err := w.Get(key)
	if err != nil {
		return false, err
	}
	return len(value) > 0, nil
}

func (w *VaultRunner) Iterator(start, end []byte) (vault.Iterator, error) {
	// TODO: support all prefix searches (later even more ranges)
	// look at orm/query.go:prefixRange for an idea how we turn prefix->iterator,
	// we should detect this case and reverse it so we can serialize over abci query
	if start != nil || end != nil {
		panic("iterator only implemented for entire range")
	}

	query := w.app.Query(abci.RequestQuery{
		Path: "/?prefix",
		Data: nil,
	})
	// if only the interface supported returning errors....
	if query.Code != 0 {
		panic(query.Log)
	}
	models, err := toModels(query.Key, query.Value)
	if err != nil {
		// oh, for an error return here...
		panic(errors.Wrap(err, "cannot parse values"))
	}

	// TODO: remove store dependency
	return store.NewSliceIterator(models), nil
}

func (w *VaultRunner) ReverseIterator(start, end []byte) (vault.Iterator, error) {
	// TODO: load normal iterator but then play it backwards?
	panic("not implemented")
}

// TODO: we really don't want to import vault/app here, do we... but we need it to parse
func toModels(keys []byte, values []byte) ([]vault.Model, error) {
	var k, v app.ResultSet
	err := k.Unmarshal(keys)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse keys")
	}
	err = v.Unmarshal(values)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse values")
	}
	return app.JoinResults(&k, &v)
}
