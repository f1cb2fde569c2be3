package record

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/memboard/internal/image"
)

// Encode writes the data bytes of the given address range as record lines,
// BytesPerLine bytes per record, followed by the dialect terminal record.
func (d Dialect) Encode(w io.Writer, img *image.Image, start uint16, size uint32) error {
	if size == 0 {
		return fmt.Errorf("nothing to encode: size is 0")
	}
	if uint32(start)+size > image.AddressSpace {
		return fmt.Errorf("range exceeds address space: start %04X, %d bytes", start, size)
	}

	addr := uint32(start)
	remaining := size
	records := 0
	for remaining > 0 {
		chunk := uint32(d.BytesPerLine)
		if remaining < chunk {
			chunk = remaining
		}
		data := img.DataRange(uint16(addr), chunk)
		if err := d.encodeLine(w, uint16(addr), data); err != nil {
			return err
		}
		addr += chunk
		remaining -= chunk
		records++
	}
	return d.encodeTerminal(w, records)
}

// encodeLine writes one data record with a freshly calculated checksum.
func (d Dialect) encodeLine(w io.Writer, addr uint16, data []byte) error {
	var sb strings.Builder

	count := len(data)
	fmt.Fprintf(&sb, "%c%02X%04X", d.Marker, count, addr)
	if d.HasTypeField {
		sb.WriteString("00")
	}
	sum := count + int(addr>>8) + int(addr&0xff)
	for _, b := range data {
		fmt.Fprintf(&sb, "%02X", b)
		sum += int(b)
	}
	fmt.Fprintf(&sb, "%02X\n", d.checksum(sum))

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	return nil
}

// encodeTerminal writes the dialect specific terminal record.
func (d Dialect) encodeTerminal(w io.Writer, records int) error {
	var line string
	if d.HasTypeField {
		line = intelTerminal + "\n"
	} else {
		count := uint16(records)
		checksum := d.checksum(int(count>>8) + int(count&0xff))
		line = fmt.Sprintf("%c00%04X%02X\n", d.Marker, count, checksum)
	}
	if _, err := io.WriteString(w, line); err != nil {
		return fmt.Errorf("writing terminal record: %w", err)
	}
	return nil
}
