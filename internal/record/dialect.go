// Package record implements the checksummed hex record formats and the flat
// binary formats used to move memory images on and off the board.
package record

// Dialect describes one line-oriented checksummed record format.
// Both supported dialects share the decode and encode algorithm and differ
// only in the parameters below and in the shape of their terminal record.
type Dialect struct {
	Name           string
	Marker         byte // start of record character
	HasTypeField   bool // a record type byte follows the address field
	BytesPerLine   int  // data bytes per encoded record
	TwosComplement bool // checksum polarity, additive otherwise
}

// Intel is the ':' marked dialect with a record type field and a
// two's-complement checksum. Its terminal record is a fixed sentinel.
var Intel = Dialect{
	Name:           "intel",
	Marker:         ':',
	HasTypeField:   true,
	BytesPerLine:   32,
	TwosComplement: true,
}

// Papertape is the ';' marked dialect with an additive checksum. Its
// terminal record carries the data record count and a checksum of it.
var Papertape = Dialect{
	Name:         "papertape",
	Marker:       ';',
	BytesPerLine: 24,
}

const intelTerminal = ":00000001FF"

// checksum reduces a running sum to the one byte checksum of the dialect.
func (d Dialect) checksum(sum int) byte {
	low := byte(sum)
	if d.TwosComplement {
		return ^low + 1
	}
	return low
}
