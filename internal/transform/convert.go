package transform

import (
	"fmt"
	"math/big"
)

// Conversion remaps a reference between the numbering systems of origin and destination
type Conversion int

const (
	// DecimalToHex turns a decimal reference into lowercase hexadecimal without leading zeros
	DecimalToHex Conversion = iota
	// HexToDecimal is the inverse of DecimalToHex
	HexToDecimal
)

func (c Conversion) String() string {
	switch c {
	case DecimalToHex:
		return "decimal->hex"
	case HexToDecimal:
		return "hex->decimal"
	default:
		return fmt.Sprintf("Conversion(%d)", int(c))
	}
}

// Reverse returns the conversion undoing c
func (c Conversion) Reverse() Conversion {
	if c == DecimalToHex {
		return HexToDecimal
	}
	return DecimalToHex
}

// Apply converts value. References may be arbitrarily long.
func (c Conversion) Apply(value string) (string, error) {
	from, to := 10, 16
	if c == HexToDecimal {
		from, to = 16, 10
	}
	if !isDigits(value, from) {
		return "", fmt.Errorf("not a base %d number", from)
	}
	n, ok := new(big.Int).SetString(value, from)
	if !ok {
		return "", fmt.Errorf("not a base %d number", from)
	}
	return n.Text(to), nil
}

func isDigits(s string, base int) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case base == 16 && ((r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')):
		default:
			return false
		}
	}
	return true
}
