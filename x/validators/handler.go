package validators

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/migration"
	"github.com/iov-one/vault/x"
	abci "github.com/tendermint/tendermint/abci/types"
)

type AuthCheckAddress = func(auth x.Authenticator, ctx vault.Context) CheckAddress

var authCheckAddress = func(auth x.Authenticator, ctx vault.Context) CheckAddress {
	return func(addr vault.Address) bool {
		return auth.HasAddress(ctx, addr)
	}
}

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r vault.Registry, auth x.Authenticator, control Controller) {
	r = migration.SchemaMigratingRegistry("validators", r)

	r.Handle(&ApplyDiffMsg{}, NewApplyDiffHandler(auth, control, authCheckAddress))
}

// RegisterQuery will register this bucket as "/validators"
func RegisterQuery(qr vault.QueryRouter) {
	NewAccountBucket().Register("validators", qr)
}

// ApplyDiffHandler updates the validator set.
type ApplyDiffHandler struct {
	auth             x.Authenticator
	control          Controller
	authCheckAddress AuthCheckAddress
}

var _ vault.Handler = ApplyDiffHandler{}

// NewApplyDiffHandler creates a handler for ApplyDiffMsg
func NewApplyDiffHandler(auth x.Authenticator, control Controller, checkAddr AuthCheckAddress) ApplyDiffHandler {
	return ApplyDiffHandler{
		auth:             auth,
		control:          control,
		authCheckAddress: checkAddr,
	}
}

// Check verifies all the preconditions
func (h ApplyDiffHandler) Check(ctx vault.Context, store vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	if _, err := h.validate(ctx, store, tx); err != nil {
		return nil, err
	}
	return &vault.CheckResult{}, nil
}

// Deliver provides the diff given everything is okay with permissions and such.
// Check did the same job already, so we can assume stuff goes okay.
func (h ApplyDiffHandler) Deliver(ctx vault.Context, store vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	diff, err := h.validate(ctx, store, tx)
	if err != nil {
		return nil, err
	}
	return &vault.DeliverResult{Diff: diffFromABCI(diff)}, nil
}

func (h ApplyDiffHandler) validate(ctx vault.Context, store vault.KVStore, tx vault.Tx) ([]abci.ValidatorUpdate, error) {
	var msg ApplyDiffMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	return h.control.CanUpdateValidators(store, h.authCheckAddress(h.auth, ctx), msg.AsABCI())
}

func diffFromABCI(diff []abci.ValidatorUpdate) []vault.ValidatorUpdate {
	res := make([]vault.ValidatorUpdate, len(diff))
	for k, v := range diff {
		res[k] = vault.ValidatorUpdateFromABCI(v)
	}
	return res
}
