// Package flash writes the block framed image format consumed by the board's
// flash programming routine.
package flash

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Each output block is 512 bytes: a 32 byte header, a 256 byte payload, a
// trailing magic word and zero padding up to the block size.
const (
	BlockSize   = 512
	PayloadSize = 256
	headerSize  = 32
)

const (
	magicHeader1 uint32 = 0x4d45_4d42 // "BMEM" in wire order
	magicHeader2 uint32 = 0x4853_4c46 // "FLSH" in wire order
	magicTrailer uint32 = 0x2144_4e45 // "END!" in wire order
	familyID     uint32 = 0x0001_0001
)

// header is the fixed per block record, serialized little-endian.
type header struct {
	Magic1      uint32
	Magic2      uint32
	Flags       uint32
	Destination uint32 // base address plus payload offset
	PayloadSize uint32 // always PayloadSize
	Index       uint32 // this block, starting at 0
	Total       uint32 // total number of blocks
	Family      uint32
}

// Write splits the buffer into PayloadSize chunks and writes one framed
// block per chunk in ascending index order. The last payload is zero padded
// if the buffer size is not a multiple of the payload size. A write failure
// aborts immediately, there is no partial block recovery.
func Write(w io.Writer, data []byte, base uint16) error {
	total := (len(data) + PayloadSize - 1) / PayloadSize

	for index := range total {
		offset := index * PayloadSize
		chunk := data[offset:min(offset+PayloadSize, len(data))]
		if err := writeBlock(w, chunk, uint32(base)+uint32(offset), index, total); err != nil {
			return fmt.Errorf("writing block %d: %w", index, err)
		}
	}
	return nil
}

// writeBlock writes one 512 byte block for the given payload chunk.
func writeBlock(w io.Writer, chunk []byte, destination uint32, index, total int) error {
	block := make([]byte, 0, BlockSize)

	hdr := header{
		Magic1:      magicHeader1,
		Magic2:      magicHeader2,
		Destination: destination,
		PayloadSize: PayloadSize,
		Index:       uint32(index),
		Total:       uint32(total),
		Family:      familyID,
	}
	block, err := binary.Append(block, binary.LittleEndian, hdr)
	if err != nil {
		return fmt.Errorf("serializing header: %w", err)
	}

	block = append(block, chunk...)
	block = append(block, make([]byte, PayloadSize-len(chunk))...)
	block = binary.LittleEndian.AppendUint32(block, magicTrailer)
	block = append(block, make([]byte, BlockSize-len(block))...)

	if _, err := w.Write(block); err != nil {
		return err
	}
	return nil
}
