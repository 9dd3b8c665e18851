package domain

import (
	"strconv"
	"strings"
)

// ParseQuantity turns an externally supplied quantity into a positive
// integer. Slot values and JSON bodies arrive as strings, numbers, or
// garbage; anything that does not parse to a positive integer falls back to
// 1, so a mutation is never blocked on input shape and a stored quantity can
// never go non-positive through the add path.
func ParseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 1
	}
	return n
}

// Quantity decodes leniently from JSON: bare numbers, quoted numbers, and
// anything else (null, words, fractions, negatives) all succeed, with
// anything non-positive defaulting to 1.
type Quantity int

func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	*q = Quantity(ParseQuantity(s))
	return nil
}
