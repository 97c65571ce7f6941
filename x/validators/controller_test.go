package validators

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/migration"
	"github.com/iov-one/vault/store"
	. "github.com/smartystreets/goconvey/convey"
	abci "github.com/tendermint/tendermint/abci/types"
)

func TestController(t *testing.T) {
	Convey("Test controller works as intended", t, func() {
		addr := []byte("12345678901234567890")
		addr2 := []byte("09876543210987654321")
		accts := VaultAccounts{[]vault.Address{addr}}

		checkAddress := func(address vault.Address) bool {
			return address.Equals(addr)
		}

		checkAddress2 := func(address vault.Address) bool {
			return address.Equals(addr2)
		}

		accountsJson, err := json.Marshal(accts)
		So(err, ShouldBeNil)

		diff := []abci.ValidatorUpdate{{Power: 2, PubKey: abci.PubKey{Type: "ed25519", Data: make([]byte, 32)}}}
		emptyDiff := make([]abci.ValidatorUpdate, 0)

		kv := store.MemStore()
		migration.MustInitPkg(kv, "validators")
		ctrl := NewController()

		Convey("When init is okay", func() {
			init := Initializer{}
			err := init.FromGenesis(vault.Options{optKey: accountsJson}, vault.GenesisParams{}, kv)
			So(err, ShouldBeNil)

			Convey("Everything is in order", func() {
				d, err := ctrl.CanUpdateValidators(kv, checkAddress, diff)
				So(err, ShouldBeNil)
				So(d, ShouldResemble, diff)
			})

			Convey("Wrong address", func() {
				_, err := ctrl.CanUpdateValidators(kv, checkAddress2, diff)
				So(errors.ErrUnauthorized.Is(err), ShouldBeTrue)
			})

			Convey("Empty diff", func() {
				_, err := ctrl.CanUpdateValidators(kv, checkAddress, emptyDiff)
				So(ErrEmptyDiff.Is(err), ShouldBeTrue)
			})
		})

		Convey("When accounts were never stored", func() {
			_, err := ctrl.CanUpdateValidators(kv, checkAddress, diff)
			So(errors.ErrNotFound.Is(err), ShouldBeTrue)
		})
	})
}
