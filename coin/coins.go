package coin

import (
	"sort"
	"strings"

	"github.com/payinbox/payinbox/errors"
)

// Coins is a set of coins, one per ticker. The canonical form is
// sorted by ticker with no zero values, which every mutating method
// maintains.
type Coins []*Coin

// CombineCoins creates a Coins set out of the given coins, combining
// entries of the same ticker and normalizing the result.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	var err error
	for _, c := range cs {
		res, err = res.Add(c)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Clone returns a copy that shares no memory with the original.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add modifies the set, returning a new set with the given coin
// combined in. The original set is not mutated.
func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs.Clone(), nil
	}
	res := cs.Clone()
	for i, have := range res {
		if have.SameType(c) {
			sum, err := have.Add(c)
			if err != nil {
				return nil, err
			}
			if sum.IsZero() {
				return append(res[:i], res[i+1:]...), nil
			}
			res[i] = &sum
			return res, nil
		}
	}
	res = append(res, &c)
	sort.Slice(res, func(i, j int) bool {
		return res[i].Ticker < res[j].Ticker
	})
	return res, nil
}

// Subtract modifies the set, returning a new set with the given coin
// removed. It is valid for the result to contain negative values, the
// caller decides if that is acceptable.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Amount returns the amount held for the given ticker, zero if absent.
func (cs Coins) Amount(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return *c
		}
	}
	return Coin{Ticker: ticker}
}

// Contains returns true if the set holds at least the given amount of
// that currency.
func (cs Coins) Contains(c Coin) bool {
	if !c.IsPositive() {
		return false
	}
	return cs.Amount(c.Ticker).Compare(c) >= 0
}

// IsEmpty returns true when the set holds no value at all.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// IsPositive returns true if there is at least one coin and all coins
// are positive.
func (cs Coins) IsPositive() bool {
	if cs.IsEmpty() {
		return false
	}
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// IsNonNegative returns true if all coins are zero or positive.
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsNonNegative() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets contain the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are in canonical order, with valid
// currency codes and no zero values.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrAmount, "zero coin in set")
		}
		if c.Ticker <= last {
			return errors.Wrapf(errors.ErrState, "coins not sorted: %s", c.Ticker)
		}
		last = c.Ticker
	}
	return nil
}

func (cs Coins) String() string {
	if cs.IsEmpty() {
		return "(empty)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}
