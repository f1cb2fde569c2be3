package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/memboard/internal/image"
	"github.com/retroenv/memboard/internal/scan"
)

// decoder tracks the state of one record file decode run.
type decoder struct {
	dialect Dialect
	img     *image.Image

	blocks   image.BlockList
	nextAddr int // address implied by the previous record, -1 if none
	records  int // data records decoded so far
	done     bool
}

// Decode reads record lines until the terminal record and stores the decoded
// bytes in the image at their record addresses. It returns the decoded runs
// as a block list in reverse file order, newly discovered blocks are
// prepended. Reaching the end of input before the terminal record is an
// error and no partial result is returned.
func (d Dialect) Decode(r io.Reader, img *image.Image) (image.BlockList, error) {
	dec := &decoder{
		dialect:  d,
		img:      img,
		nextAddr: -1,
	}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if err := dec.decodeLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		if dec.done {
			return dec.blocks, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return nil, errors.New("unexpected end of file, terminal record missing")
}

// decodeLine decodes one record. The line has already been stripped of its
// line terminator.
func (dec *decoder) decodeLine(line string) error {
	d := dec.dialect
	if len(line) < 3 {
		return fmt.Errorf("record too short: %d characters", len(line))
	}
	if line[0] != d.Marker {
		return fmt.Errorf("unexpected marker character '%c'", line[0])
	}

	count, err := scan.HexByte(line[1:])
	if err != nil {
		return err
	}
	if count == 0 {
		if err := dec.decodeTerminal(line); err != nil {
			return err
		}
		dec.done = true
		return nil
	}
	return dec.decodeData(line, int(count))
}

// decodeData decodes a data record and merges it into the block list.
func (dec *decoder) decodeData(line string, count int) error {
	d := dec.dialect

	required := 1 + 2 + 4 + 2*count + 2
	if d.HasTypeField {
		required += 2
	}
	if len(line) < required {
		return fmt.Errorf("record too short: %d characters, require %d", len(line), required)
	}

	addr, err := scan.HexWord(line[3:])
	if err != nil {
		return err
	}
	offset := 7
	if d.HasTypeField {
		recType, err := scan.HexByte(line[7:])
		if err != nil {
			return err
		}
		if recType != 0 {
			return fmt.Errorf("unsupported record type %02X", recType)
		}
		offset = 9
	}
	if int(addr)+count > image.AddressSpace {
		return fmt.Errorf("record exceeds address space: address %04X, %d bytes", addr, count)
	}

	sum := count + int(addr>>8) + int(addr&0xff)
	data := make([]byte, count)
	for i := range data {
		b, err := scan.HexByte(line[offset+2*i:])
		if err != nil {
			return err
		}
		data[i] = b
		sum += int(b)
	}
	stored, err := scan.HexByte(line[offset+2*count:])
	if err != nil {
		return err
	}
	if calculated := d.checksum(sum); stored != calculated {
		return fmt.Errorf("checksum mismatch: calculated %02X, record has %02X", calculated, stored)
	}

	dec.img.SetDataRange(addr, data)

	if dec.nextAddr == int(addr) {
		dec.blocks[0].Count += uint32(count)
	} else {
		dec.blocks.Prepend(image.Block{
			HasStart: true,
			Start:    addr,
			Count:    uint32(count),
		})
	}
	dec.nextAddr = int(addr) + count
	dec.records++
	return nil
}

// decodeTerminal verifies the dialect specific terminal record.
func (dec *decoder) decodeTerminal(line string) error {
	d := dec.dialect

	if d.HasTypeField {
		// hex digits are accepted in both cases, the sentinel is no exception
		if !strings.EqualFold(line, intelTerminal) {
			return fmt.Errorf("malformed terminal record '%s'", line)
		}
		return nil
	}

	// the address field of the terminal record holds the data record count,
	// checksummed like a data record without data bytes
	if len(line) < 9 {
		return fmt.Errorf("malformed terminal record '%s'", line)
	}
	count, err := scan.HexWord(line[3:])
	if err != nil {
		return err
	}
	stored, err := scan.HexByte(line[7:])
	if err != nil {
		return err
	}
	calculated := d.checksum(int(count>>8) + int(count&0xff))
	if stored != calculated {
		return fmt.Errorf("terminal record checksum mismatch: calculated %02X, record has %02X",
			calculated, stored)
	}
	if int(count) != dec.records {
		return fmt.Errorf("record count mismatch: decoded %d records, terminal record has %d",
			dec.records, count)
	}
	return nil
}
