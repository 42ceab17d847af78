package internal

import (
	"math/big"
)

// CompareFloat orders two endpoints, infinities included.
// It panics with big.ErrNaN if either value is NaN.
func CompareFloat(v1, v2 float64) int {
	return big.NewFloat(v1).Cmp(big.NewFloat(v2))
}
