package record

import (
	"fmt"
	"io"

	"github.com/retroenv/memboard/internal/image"
)

// ReadBinary reads a headerless binary file into the image starting at
// address 0. Plain binary input carries no address information, the
// resulting single block has no start address set.
func ReadBinary(r io.Reader, img *image.Image) (image.BlockList, error) {
	block, err := readFlat(r, img, 0)
	if err != nil {
		return nil, err
	}
	return image.BlockList{block}, nil
}

// WriteBinary writes the data bytes of the given range without any header.
// Attribute bytes are not part of the output, plain binary is lossy with
// respect to the enable and write-protect state.
func WriteBinary(w io.Writer, img *image.Image, start uint16, size uint32) error {
	if size == 0 {
		return fmt.Errorf("nothing to write: size is 0")
	}
	if uint32(start)+size > image.AddressSpace {
		return fmt.Errorf("range exceeds address space: start %04X, %d bytes", start, size)
	}
	if _, err := w.Write(img.DataRange(start, size)); err != nil {
		return fmt.Errorf("writing binary data: %w", err)
	}
	return nil
}

// ReadPRG reads a binary file prefixed with a little-endian 16 bit load
// address and stores its payload at that address.
func ReadPRG(r io.Reader, img *image.Image) (image.BlockList, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading load address: %w", err)
	}
	start := uint16(header[0]) | uint16(header[1])<<8

	block, err := readFlat(r, img, start)
	if err != nil {
		return nil, err
	}
	block.HasStart = true
	return image.BlockList{block}, nil
}

// WritePRG writes the little-endian load address followed by the plain
// binary payload of the given range.
func WritePRG(w io.Writer, img *image.Image, start uint16, size uint32) error {
	header := []byte{byte(start), byte(start >> 8)}
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing load address: %w", err)
	}
	return WriteBinary(w, img, start, size)
}

// ReadRaw reads a dump of the internal two bytes per cell layout,
// attribute bytes included. The input has to cover the whole buffer.
func ReadRaw(r io.Reader, img *image.Image) (image.BlockList, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(data) != image.BufferSize {
		return nil, fmt.Errorf("raw image has %d bytes, expected %d", len(data), image.BufferSize)
	}
	copy(img.Bytes(), data)
	return image.BlockList{{
		HasStart: true,
		Start:    0,
		Count:    image.AddressSpace,
	}}, nil
}

// WriteRaw writes the internal layout verbatim. The layout is subject to
// change, raw dumps exist for diagnostics.
func WriteRaw(w io.Writer, img *image.Image) error {
	if _, err := w.Write(img.Bytes()); err != nil {
		return fmt.Errorf("writing raw image: %w", err)
	}
	return nil
}

// readFlat reads the remaining input into the image as data bytes starting
// at the given address and describes it as a single block.
func readFlat(r io.Reader, img *image.Image, start uint16) (image.Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return image.Block{}, fmt.Errorf("reading input: %w", err)
	}
	if len(data) == 0 {
		return image.Block{}, fmt.Errorf("empty input")
	}
	if int(start)+len(data) > image.AddressSpace {
		return image.Block{}, fmt.Errorf("input does not fit: start %04X, %d bytes", start, len(data))
	}
	img.SetDataRange(start, data)
	return image.Block{
		Start: start,
		Count: uint32(len(data)),
	}, nil
}
