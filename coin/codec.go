package coin

import (
	"github.com/iov-one/vault/codec"
)

func init() {
	codec.RegisterConcrete(&Coin{}, "vault/coin/Coin")
}

// Coin can hold any amount between -1 billion and +1 billion at steps of
// 10^-9. It is a fixed-point decimal representation and uses no floating
// point math at all.
//
// The value of a coin is `Whole + Fractional / 10^9`. Whole and Fractional
// must have the same sign. The Ticker names the currency and two coins can
// only be combined when their tickers match.
type Coin struct {
	// Whole coins, -10^15 < whole < 10^15
	Whole int64 `json:"whole,omitempty"`
	// Billionth of coins. 0 <= abs(fractional) < 10^9
	// If fractional != 0, must have same sign as whole
	Fractional int64 `json:"fractional,omitempty"`
	// Ticker is 3-4 upper-case letters and all coins of the same currency
	// can be combined
	Ticker string `json:"ticker,omitempty"`
}

func (c *Coin) GetWhole() int64 {
	if c == nil {
		return 0
	}
	return c.Whole
}

func (c *Coin) GetFractional() int64 {
	if c == nil {
		return 0
	}
	return c.Fractional
}

func (c *Coin) GetTicker() string {
	if c == nil {
		return ""
	}
	return c.Ticker
}

func (c *Coin) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Coin) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}
