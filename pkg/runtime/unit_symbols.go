package runtime

import (
	"fmt"
	"strconv"
)

// ParseUnitSymbol resolves a unit symbol such as "mm2", "kg", "s" or "kPa".
// Trailing digits are the power. A symbol that names a base unit exactly is
// never split into prefix and base.
func ParseUnitSymbol(symbol string) (Unit, error) {
	body := symbol
	end := len(body)
	for end > 0 && body[end-1] >= '0' && body[end-1] <= '9' {
		end--
	}
	power := 1
	if end < len(body) {
		p, err := strconv.Atoi(body[end:])
		if err != nil || p < 1 {
			return Unit{}, fmt.Errorf("invalid power in unit '%s'", symbol)
		}
		power = p
		body = body[:end]
	}
	if body == "" {
		return Unit{}, fmt.Errorf("invalid unit '%s'", symbol)
	}
	if base, ok := LookupBaseUnit(body); ok {
		return NewUnit(base, PrefixNone, power)
	}
	for _, prefix := range knownPrefixes {
		p := string(prefix)
		if len(body) <= len(p) || body[:len(p)] != p {
			continue
		}
		if base, ok := LookupBaseUnit(body[len(p):]); ok {
			return NewUnit(base, prefix, power)
		}
	}
	return Unit{}, fmt.Errorf("unknown unit '%s'", symbol)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
