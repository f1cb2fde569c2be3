// Package format defines the image file formats the tool reads and writes.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/memboard/internal/image"
	"github.com/retroenv/memboard/internal/record"
)

const (
	Intel     = "intel"
	Papertape = "papertape"
	Binary    = "bin"
	PRG       = "prg"
	Raw       = "raw"
)

var names = []string{Intel, Papertape, Binary, PRG, Raw}

// Names returns the valid format names for usage texts.
func Names() string {
	return strings.Join(names, ", ")
}

// Validate checks a format name.
func Validate(name string) error {
	for _, valid := range names {
		if name == valid {
			return nil
		}
	}
	return fmt.Errorf("unsupported format: %s. Valid options: %s", name, Names())
}

// Read decodes input in the named format into the image and returns the
// decoded block list.
func Read(name string, r io.Reader, img *image.Image) (image.BlockList, error) {
	switch name {
	case Intel:
		return record.Intel.Decode(r, img)
	case Papertape:
		return record.Papertape.Decode(r, img)
	case Binary:
		return record.ReadBinary(r, img)
	case PRG:
		return record.ReadPRG(r, img)
	case Raw:
		return record.ReadRaw(r, img)
	default:
		return nil, fmt.Errorf("unsupported format: %s", name)
	}
}

// Write encodes the given address range of the image in the named format.
// The raw format always covers the whole address space.
func Write(name string, w io.Writer, img *image.Image, start uint16, size uint32) error {
	switch name {
	case Intel:
		return record.Intel.Encode(w, img, start, size)
	case Papertape:
		return record.Papertape.Encode(w, img, start, size)
	case Binary:
		return record.WriteBinary(w, img, start, size)
	case PRG:
		return record.WritePRG(w, img, start, size)
	case Raw:
		return record.WriteRaw(w, img)
	default:
		return fmt.Errorf("unsupported format: %s", name)
	}
}
