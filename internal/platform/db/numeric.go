package db

import (
	"fmt"
	"math"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// NumericInt converts a SUM() aggregate to an int. SQL NULL (an empty LEFT
// JOIN group) becomes 0; fractional or out-of-range values are errors.
func NumericInt(n pgtype.Numeric) (int, error) {
	if !n.Valid {
		return 0, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return 0, fmt.Errorf("numeric aggregate is not a finite number")
	}
	if n.Int == nil {
		return 0, nil
	}

	v := new(big.Int).Set(n.Int)
	switch {
	case n.Exp > 0:
		v.Mul(v, pow10(n.Exp))
	case n.Exp < 0:
		var rem big.Int
		v.QuoRem(v, pow10(-n.Exp), &rem)
		if rem.Sign() != 0 {
			return 0, fmt.Errorf("numeric aggregate %s is not an integer", n.Int.String())
		}
	}

	if !v.IsInt64() || v.Int64() > math.MaxInt || v.Int64() < math.MinInt {
		return 0, fmt.Errorf("numeric aggregate %s overflows int", v.String())
	}
	return int(v.Int64()), nil
}

// NumericDecimal converts a currency column or aggregate to a decimal without
// passing through float64. SQL NULL becomes zero.
func NumericDecimal(n pgtype.Numeric) (decimal.Decimal, error) {
	if !n.Valid {
		return decimal.Zero, nil
	}
	if n.NaN || n.InfinityModifier != pgtype.Finite {
		return decimal.Zero, fmt.Errorf("numeric value is not a finite number")
	}
	if n.Int == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

func pow10(exp int32) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(exp)), nil)
}
