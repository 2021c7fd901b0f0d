package player

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidPrice = errors.New("invalid price")

// Price is a monetary amount in hundredths of a budget unit, so 7.5 is 750.
type Price int64

const priceScale = 100

// maxPriceUnits is the largest whole part whose hundredths still fit in int64.
const maxPriceUnits = (math.MaxInt64 - (priceScale - 1)) / priceScale

// Units converts whole budget units to a Price.
func Units(n int64) Price {
	return Price(n * priceScale)
}

// ParsePrice parses a non-negative decimal with at most two fractional
// digits ("7", "7.5", "7.50").
func ParsePrice(raw string) (Price, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidPrice)
	}

	whole, frac, hasFrac := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}
	if hasFrac && (frac == "" || len(frac) > 2 || !isDigits(frac)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidPrice, raw, err)
	}
	if units > maxPriceUnits {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidPrice, raw)
	}

	var hundredths int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		hundredths, _ = strconv.ParseInt(frac, 10, 64)
	}

	return Price(units*priceScale + hundredths), nil
}

func (p Price) String() string {
	sign := ""
	v := int64(p)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/priceScale, v%priceScale)
}

// Float is for presentation only; arithmetic stays in hundredths.
func (p Price) Float() float64 {
	return float64(p) / priceScale
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
