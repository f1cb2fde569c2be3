// Package image represents the in-memory layout of the emulated address space.
package image

// The board emulates a 16 bit address space. Each address is backed by two
// bytes in the internal layout: the data byte followed by an attribute byte.
const (
	AddressSpace = 0x10000
	BufferSize   = 2 * AddressSpace
)

// Attribute byte bits. A cell with attribute 0 is enabled and read-only.
const (
	AttrDisabled byte = 0x01 // chip-enable, set = disabled
	AttrWritable byte = 0x02 // set = writable
)

// Image is the flat buffer holding data and attribute bytes for the whole
// address space. The caller owns the image for its lifetime, codecs only
// read and write slices of it during a call.
type Image struct {
	buf []byte
}

// New creates an image with all cells zeroed and disabled.
func New() *Image {
	img := &Image{
		buf: make([]byte, BufferSize),
	}
	for addr := 0; addr < AddressSpace; addr++ {
		img.buf[addr*2+1] = AttrDisabled
	}
	return img
}

// Data returns the data byte at the given address.
func (img *Image) Data(addr uint16) byte {
	return img.buf[int(addr)*2]
}

// SetData sets the data byte at the given address.
func (img *Image) SetData(addr uint16, value byte) {
	img.buf[int(addr)*2] = value
}

// Attr returns the attribute byte at the given address.
func (img *Image) Attr(addr uint16) byte {
	return img.buf[int(addr)*2+1]
}

// SetAttr sets the attribute byte at the given address.
func (img *Image) SetAttr(addr uint16, value byte) {
	img.buf[int(addr)*2+1] = value
}

// SetEnabled sets or clears the chip-enable state of the given address.
func (img *Image) SetEnabled(addr uint16, enabled bool) {
	i := int(addr)*2 + 1
	if enabled {
		img.buf[i] &^= AttrDisabled
	} else {
		img.buf[i] |= AttrDisabled
	}
}

// SetWritable sets or clears the writable state of the given address.
func (img *Image) SetWritable(addr uint16, writable bool) {
	i := int(addr)*2 + 1
	if writable {
		img.buf[i] |= AttrWritable
	} else {
		img.buf[i] &^= AttrWritable
	}
}

// Bytes returns the raw internal layout, two bytes per address.
// The layout is exposed verbatim by the raw codec and is subject to change.
func (img *Image) Bytes() []byte {
	return img.buf
}

// DataRange copies size data bytes starting at the given address,
// skipping the attribute bytes.
func (img *Image) DataRange(start uint16, size uint32) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = img.buf[(int(start)+i)*2]
	}
	return data
}

// SetDataRange stores the given bytes as consecutive data bytes
// starting at the given address.
func (img *Image) SetDataRange(start uint16, data []byte) {
	for i, b := range data {
		img.buf[(int(start)+i)*2] = b
	}
}
