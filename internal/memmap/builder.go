package memmap

import (
	"fmt"
	"os"

	"github.com/retroenv/memboard/internal/image"
)

// Build applies the segments to the image in document order: content bytes
// first, then the attribute bits of every cell in the segment range.
// File contents are read now and have to still match the size determined
// at parse time.
func Build(img *image.Image, segments []*Segment) error {
	for i, seg := range segments {
		if err := buildSegment(img, seg); err != nil {
			return fmt.Errorf("segment %d: %w", i+1, err)
		}
	}
	return nil
}

// Envelope returns the lowest start address and the total size of the
// address range covered by the segments. The result is undefined for an
// empty list.
func Envelope(segments []*Segment) (uint16, uint32) {
	var (
		low  uint32 = image.AddressSpace
		high uint32
	)
	for _, seg := range segments {
		start := uint32(seg.Start)
		if start < low {
			low = start
		}
		if end := start + seg.Count; end > high {
			high = end
		}
	}
	return uint16(low), high - low
}

func buildSegment(img *image.Image, seg *Segment) error {
	switch {
	case seg.Data != nil:
		img.SetDataRange(seg.Start, seg.Data)

	case seg.File != "":
		data, err := os.ReadFile(seg.File)
		if err != nil {
			return fmt.Errorf("reading file '%s': %w", seg.File, err)
		}
		if uint32(len(data)) != seg.Count {
			return fmt.Errorf("file '%s' has %d bytes, expected %d",
				seg.File, len(data), seg.Count)
		}
		img.SetDataRange(seg.Start, data)

	case seg.Fill != nil:
		for i := uint32(0); i < seg.Count; i++ {
			img.SetData(seg.Start+uint16(i), *seg.Fill)
		}
	}

	for i := uint32(0); i < seg.Count; i++ {
		addr := seg.Start + uint16(i)
		if seg.Enabled != nil {
			img.SetEnabled(addr, *seg.Enabled)
		}
		if seg.ReadOnly != nil {
			img.SetWritable(addr, !*seg.ReadOnly)
		}
	}
	return nil
}
