// Package scan provides the primitive text to number conversions shared by all parsers.
package scan

import (
	"fmt"
	"strconv"
	"strings"
)

// IsHexDigit returns whether c is an ASCII hexadecimal digit.
func IsHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	default:
		return false
	}
}

// HexNibble returns the value of a single hexadecimal digit.
// The result for a non-hex digit is undefined, callers have to
// validate the input using IsHexDigit first.
func HexNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

// HexByte converts the first 2 characters of s to a byte value.
func HexByte(s string) (byte, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("hex byte too short: '%s'", s)
	}
	for i := range 2 {
		if !IsHexDigit(s[i]) {
			return 0, fmt.Errorf("invalid hex byte: '%s'", s[:2])
		}
	}
	return HexNibble(s[0])<<4 | HexNibble(s[1]), nil
}

// HexWord converts the first 4 characters of s to a 16 bit value.
func HexWord(s string) (uint16, error) {
	if len(s) < 4 {
		return 0, fmt.Errorf("hex word too short: '%s'", s)
	}
	for i := range 4 {
		if !IsHexDigit(s[i]) {
			return 0, fmt.Errorf("invalid hex word: '%s'", s[:4])
		}
	}
	var value uint16
	for i := range 4 {
		value = value<<4 | uint16(HexNibble(s[i]))
	}
	return value, nil
}

// OctByte converts a string of exactly 3 octal digits to a byte value.
func OctByte(s string) (byte, error) {
	if len(s) != 3 {
		return 0, fmt.Errorf("invalid octal byte: '%s'", s)
	}
	var value uint16
	for i := range 3 {
		c := s[i]
		if c < '0' || c > '7' {
			return 0, fmt.Errorf("invalid octal byte: '%s'", s)
		}
		value = value<<3 | uint16(c-'0')
	}
	if value > 0xff {
		return 0, fmt.Errorf("octal byte out of range: '%s'", s)
	}
	return byte(value), nil
}

// Uint converts a decimal or 0x prefixed hexadecimal string to an
// unsigned integer and checks it against the given upper bound.
func Uint(s string, maxValue uint64) (uint64, error) {
	base := 10
	digits := s
	if rest, ok := strings.CutPrefix(s, "0x"); ok {
		base = 16
		digits = rest
	}
	value, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: '%s'", s)
	}
	if value > maxValue {
		return 0, fmt.Errorf("number %s exceeds maximum %d", s, maxValue)
	}
	return value, nil
}

// Bool converts the literal tokens true and false to a bool.
func Bool(s string) (bool, error) {
	switch s {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean: '%s'", s)
	}
}

// Enum returns the index of s in the given token table.
// The match is exact and case-sensitive.
func Enum(s string, table []string) (int, error) {
	for i, token := range table {
		if s == token {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid value '%s', valid options: %s", s, strings.Join(table, ", "))
}
