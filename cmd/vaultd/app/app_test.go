package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/app"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/commands/server"
	"github.com/iov-one/vault/crypto"
	"github.com/iov-one/vault/x/cash"
	"github.com/iov-one/vault/x/sigs"
	"github.com/iov-one/vault/x/timelock"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// genesisTime is the block time of the first block. All lock and
// unlock deadlines in the tests are relative to it.
var genesisTime = time.Unix(2000000, 0)

func testInitChain(t *testing.T, myApp app.BaseApp, chainID, addr string) {
	t.Helper()

	appState := fmt.Sprintf(`{
		"cash": [{
			"address": "%s",
			"coins": [{"whole": 50000, "ticker": "VLT"}]
		}],
		"conf": {
			"cash": {
				"collector_address": "3b11c732b8fc1f09beb34031302fe2ab347c5c14",
				"minimal_fee": "0 VLT"
			},
			"timelock": {
				"holder": 1,
				"cancel_error": 2
			},
			"migration": {
				"admin": "%s"
			}
		},
		"initialize_schema": ["cash", "sigs", "validators", "timelock"]
	}`, addr, addr)

	assert.Equal(t, "", myApp.GetChainID())
	myApp.InitChain(abci.RequestInitChain{
		AppStateBytes: []byte(appState),
		ChainId:       chainID,
		Time:          genesisTime,
	})
}

// testCommit runs an empty block at the given height and time and
// returns the new app hash.
func testCommit(t *testing.T, myApp app.BaseApp, h int64, blockTime time.Time) []byte {
	t.Helper()

	header := abci.Header{Height: h, Time: blockTime}
	myApp.BeginBlock(abci.RequestBeginBlock{Header: header})
	myApp.EndBlock(abci.RequestEndBlock{})
	cres := myApp.Commit()
	assert.NotEmpty(t, cres.Data)
	return cres.Data
}

func testQuery(t *testing.T, myApp app.BaseApp, path string, key []byte, obj vault.Persistent) {
	t.Helper()

	qres := myApp.Query(abci.RequestQuery{Path: path, Data: key})
	require.Equal(t, uint32(0), qres.Code, "%#v", qres)
	require.NotEmpty(t, qres.Value, "query %s %X returned nothing", path, key)
	err := app.UnmarshalOneResult(qres.Value, obj)
	require.NoError(t, err)
}

func signedTxBytes(t *testing.T, chainID string, signer *crypto.PrivateKey, seq int64, msg vault.Msg) []byte {
	t.Helper()

	tx := &Tx{Msg: msg}
	sig, err := sigs.SignTx(signer, tx, chainID, seq)
	require.NoError(t, err)
	tx.Signatures = []*sigs.StdSignature{sig}
	txBytes, err := tx.Marshal()
	require.NoError(t, err)
	return txBytes
}

// testDeliverTx runs a single transaction in its own block and
// returns the deliver response without asserting the result code.
func testDeliverTx(t *testing.T, myApp app.BaseApp, h int64, blockTime time.Time, txBytes []byte) abci.ResponseDeliverTx {
	t.Helper()

	header := abci.Header{Height: h, Time: blockTime}
	myApp.BeginBlock(abci.RequestBeginBlock{Header: header})
	dres := myApp.DeliverTx(txBytes)
	myApp.EndBlock(abci.RequestEndBlock{})
	cres := myApp.Commit()
	assert.NotEmpty(t, cres.Data)
	return dres
}

func TestLockLifecycle(t *testing.T) {
	chainID := "test-net-22"
	abciApp, err := GenerateApp(&server.Options{
		MinFee: coin.Coin{},
		Home:   "",
		Logger: log.NewNopLogger(),
		Debug:  false,
	})
	require.NoError(t, err)
	myApp := abciApp.(app.BaseApp)

	sender := crypto.GenPrivKeyEd25519()
	senderAddr := sender.PublicKey().Address()
	recipient := crypto.GenPrivKeyEd25519()
	recipientAddr := recipient.PublicKey().Address()

	testInitChain(t, myApp, chainID, senderAddr.String())
	assert.Equal(t, chainID, myApp.GetChainID())
	testCommit(t, myApp, 1, genesisTime)

	var wallet cash.Set
	testQuery(t, myApp, "/wallets", senderAddr, &wallet)
	require.Equal(t, 1, len(wallet.Coins))
	assert.Equal(t, int64(50000), wallet.Coins[0].Whole)

	// lock 2000 VLT for the recipient, unlocking 5 seconds in
	amount := coin.NewCoin(2000, 0, "VLT")
	lockTx := signedTxBytes(t, chainID, sender, 0, &timelock.LockMsg{
		Metadata:     &vault.Metadata{Schema: 1},
		Recipient:    recipientAddr,
		Amount:       &amount,
		LockDuration: vault.AsUnixDuration(5 * time.Second),
		Memo:         "salary advance",
	})
	dres := testDeliverTx(t, myApp, 2, genesisTime, lockTx)
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	lockID := dres.Data
	require.Equal(t, 8, len(lockID))

	var lock timelock.LockedFund
	testQuery(t, myApp, "/timelocks", lockID, &lock)
	assert.Equal(t, senderAddr, lock.Sender)
	assert.Equal(t, recipientAddr, lock.Recipient)
	assert.Equal(t, recipientAddr, lock.Holder)
	assert.Equal(t, vault.AsUnixTime(genesisTime.Add(5*time.Second)), lock.UnlockAt)

	// the locked amount moved from the wallet into the custody account
	var after cash.Set
	testQuery(t, myApp, "/wallets", senderAddr, &after)
	require.Equal(t, 1, len(after.Coins))
	assert.Equal(t, int64(48000), after.Coins[0].Whole)
	var custody cash.Set
	testQuery(t, myApp, "/wallets", lock.Address, &custody)
	require.Equal(t, 1, len(custody.Coins))
	assert.Equal(t, int64(2000), custody.Coins[0].Whole)

	// too early, the funds stay locked
	earlyTx := signedTxBytes(t, chainID, recipient, 0, &timelock.ReleaseMsg{
		Metadata: &vault.Metadata{Schema: 1},
		LockID:   lockID,
	})
	dres = testDeliverTx(t, myApp, 3, genesisTime.Add(2*time.Second), earlyTx)
	require.NotEqual(t, uint32(0), dres.Code)
	assert.Contains(t, dres.Log, "time locked")

	// at the unlock time the release goes through
	releaseTx := signedTxBytes(t, chainID, recipient, 1, &timelock.ReleaseMsg{
		Metadata: &vault.Metadata{Schema: 1},
		LockID:   lockID,
	})
	dres = testDeliverTx(t, myApp, 4, genesisTime.Add(5*time.Second), releaseTx)
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	var received cash.Set
	testQuery(t, myApp, "/wallets", recipientAddr, &received)
	require.Equal(t, 1, len(received.Coins))
	assert.Equal(t, int64(2000), received.Coins[0].Whole)

	// released locks are deleted
	qres := myApp.Query(abci.RequestQuery{Path: "/timelocks", Data: lockID})
	assert.Empty(t, qres.Value)
}

func TestLockCancel(t *testing.T) {
	chainID := "test-net-23"
	abciApp, err := GenerateApp(&server.Options{
		Logger: log.NewNopLogger(),
	})
	require.NoError(t, err)
	myApp := abciApp.(app.BaseApp)

	sender := crypto.GenPrivKeyEd25519()
	senderAddr := sender.PublicKey().Address()
	recipientAddr := crypto.GenPrivKeyEd25519().PublicKey().Address()

	testInitChain(t, myApp, chainID, senderAddr.String())
	testCommit(t, myApp, 1, genesisTime)

	amount := coin.NewCoin(3000, 0, "VLT")
	lockTx := signedTxBytes(t, chainID, sender, 0, &timelock.LockMsg{
		Metadata:     &vault.Metadata{Schema: 1},
		Recipient:    recipientAddr,
		Amount:       &amount,
		LockDuration: vault.AsUnixDuration(time.Hour),
	})
	dres := testDeliverTx(t, myApp, 2, genesisTime, lockTx)
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	lockID := dres.Data

	cancelTx := signedTxBytes(t, chainID, sender, 1, &timelock.CancelMsg{
		Metadata: &vault.Metadata{Schema: 1},
		LockID:   lockID,
	})
	dres = testDeliverTx(t, myApp, 3, genesisTime.Add(time.Minute), cancelTx)
	require.Equal(t, uint32(0), dres.Code, dres.Log)

	// the full amount is back in the sender wallet
	var wallet cash.Set
	testQuery(t, myApp, "/wallets", senderAddr, &wallet)
	require.Equal(t, 1, len(wallet.Coins))
	assert.Equal(t, int64(50000), wallet.Coins[0].Whole)

	// a cancel after the unlock time is rejected, the genesis
	// configuration reports the distinct error
	lateTx := signedTxBytes(t, chainID, sender, 2, &timelock.LockMsg{
		Metadata:     &vault.Metadata{Schema: 1},
		Recipient:    recipientAddr,
		Amount:       &amount,
		LockDuration: vault.AsUnixDuration(5 * time.Second),
	})
	dres = testDeliverTx(t, myApp, 4, genesisTime.Add(2*time.Minute), lateTx)
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	lateCancel := signedTxBytes(t, chainID, sender, 3, &timelock.CancelMsg{
		Metadata: &vault.Metadata{Schema: 1},
		LockID:   dres.Data,
	})
	dres = testDeliverTx(t, myApp, 5, genesisTime.Add(3*time.Minute), lateCancel)
	require.NotEqual(t, uint32(0), dres.Code)
	assert.Contains(t, dres.Log, "lock already elapsed")
}
