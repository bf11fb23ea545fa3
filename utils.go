package aori

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

const (
	MaxDecimals = 18
	ZeroAddress = "0x0000000000000000000000000000000000000000"
)

// SafeAmountToWei safely converts a human-readable amount to base units
// without going through floating point division.
func SafeAmountToWei(amount float64, decimals int) (*big.Int, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got: %f", amount)
	}

	if decimals < 0 || decimals > MaxDecimals {
		return nil, fmt.Errorf("decimals must be between 0 and %d, got: %d", MaxDecimals, decimals)
	}

	// Convert to string for precision
	amountStr := strconv.FormatFloat(amount, 'f', -1, 64)

	parts := strings.Split(amountStr, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid amount format: %q", amountStr)
	}

	integerPart := parts[0]
	decimalPart := ""
	if len(parts) == 2 {
		decimalPart = parts[1]
	}

	// Pad or truncate the decimal part to match decimals
	if len(decimalPart) > decimals {
		decimalPart = decimalPart[:decimals]
	} else {
		decimalPart = decimalPart + strings.Repeat("0", decimals-len(decimalPart))
	}

	combined := integerPart + decimalPart

	result, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("failed to convert amount %q to big.Int", combined)
	}

	// Must stay representable when narrowed to a uint256 downstream
	maxUint256 := new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)
	if result.Cmp(maxUint256) >= 0 {
		return nil, fmt.Errorf("amount too large for uint256: %s", result.String())
	}

	if result.Sign() <= 0 {
		return nil, fmt.Errorf("calculated amount is zero or negative")
	}

	return result, nil
}
