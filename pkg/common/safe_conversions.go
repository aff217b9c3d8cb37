package common

import (
	"fmt"
	"strconv"
)

// ParseUint16 parses a decimal or 0x-prefixed hexadecimal 16-bit value
func ParseUint16(text string) (uint16, error) {
	value, err := strconv.ParseUint(text, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid 16-bit value %q: %w", text, err)
	}
	return uint16(value), nil
}
