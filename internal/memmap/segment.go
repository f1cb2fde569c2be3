// Package memmap parses memory map documents into validated segment lists
// and applies them to a memory image.
package memmap

// Segment is one validated memory map document: a contiguous address range
// with its attributes and content source. End, Enabled, ReadOnly and Fill
// are tri-state, nil means the document did not set them.
type Segment struct {
	Start    uint16  `json:"start"`
	End      *uint16 `json:"end,omitempty"`
	Enabled  *bool   `json:"enabled,omitempty"`
	ReadOnly *bool   `json:"readonly,omitempty"` // derived from the type key
	Fill     *byte   `json:"fill,omitempty"`
	Data     []byte  `json:"data,omitempty"`
	File     string  `json:"file,omitempty"`
	Count    uint32  `json:"count"` // derived on document end
}

// memoryTypes are the accepted values of the type key. rom segments are
// read-only, ram segments writable.
var memoryTypes = []string{"ram", "rom"}
