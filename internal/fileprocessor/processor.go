// Package fileprocessor implements the file processing workflows behind the
// commands: it opens the input and output files, picks the codecs and runs
// them to completion.
package fileprocessor

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/memboard/internal/flash"
	"github.com/retroenv/memboard/internal/format"
	"github.com/retroenv/memboard/internal/image"
	"github.com/retroenv/memboard/internal/memmap"
	"github.com/retroenv/memboard/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Convert decodes the input image file and encodes it in the output format.
// Without explicit base and size options the output covers the envelope of
// the decoded blocks.
func Convert(logger *log.Logger, opts options.Program) error {
	img := image.New()
	blocks, err := decodeInput(opts, img)
	if err != nil {
		return err
	}

	start, size := outputRange(opts, blocks)
	logger.Debug("Decoded input",
		log.Int("blocks", len(blocks)),
		log.Hex("start", start),
		log.Int("size", int(size)))

	if err := writeOutput(opts, func(w io.Writer) error {
		return format.Write(opts.To, w, img, start, size)
	}); err != nil {
		return err
	}

	logger.Info("Converted image",
		log.String("from", opts.From),
		log.String("to", opts.To))
	return nil
}

// BuildMap parses a memory map document, builds the image it describes and
// encodes the covered range in the output format.
func BuildMap(logger *log.Logger, opts options.Program) error {
	file, err := os.Open(opts.MapFile)
	if err != nil {
		return fmt.Errorf("opening file '%s': %w", opts.MapFile, err)
	}
	segments, err := memmap.Parse(file)
	_ = file.Close()
	if err != nil {
		return fmt.Errorf("parsing memory map '%s': %w", opts.MapFile, err)
	}
	if len(segments) == 0 {
		return fmt.Errorf("memory map '%s' contains no segments", opts.MapFile)
	}

	img := image.New()
	if err := memmap.Build(img, segments); err != nil {
		return fmt.Errorf("building image: %w", err)
	}

	start, size := memmap.Envelope(segments)
	if opts.HasBase {
		start = opts.Base
	}
	if opts.HasSize {
		size = opts.Size
	}

	if err := writeOutput(opts, func(w io.Writer) error {
		return format.Write(opts.To, w, img, start, size)
	}); err != nil {
		return err
	}

	logger.Info("Built image",
		log.Int("segments", len(segments)),
		log.Hex("start", start),
		log.Int("size", int(size)))
	return nil
}

// Flash decodes the input image file and writes it as a flashable block
// stream.
func Flash(logger *log.Logger, opts options.Program) error {
	img := image.New()
	blocks, err := decodeInput(opts, img)
	if err != nil {
		return err
	}

	start, size := outputRange(opts, blocks)
	if uint32(start)+size > image.AddressSpace {
		return fmt.Errorf("range exceeds address space: start %04X, %d bytes", start, size)
	}
	data := img.DataRange(start, size)

	if err := writeOutput(opts, func(w io.Writer) error {
		return flash.Write(w, data, start)
	}); err != nil {
		return err
	}

	total := (len(data) + flash.PayloadSize - 1) / flash.PayloadSize
	logger.Info("Wrote flash image",
		log.Int("blocks", total),
		log.Hex("base", start))
	return nil
}

// decodeInput opens the input file and decodes it into the image.
func decodeInput(opts options.Program, img *image.Image) (image.BlockList, error) {
	file, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening file '%s': %w", opts.Input, err)
	}
	defer func() { _ = file.Close() }()

	blocks, err := format.Read(opts.From, file, img)
	if err != nil {
		return nil, fmt.Errorf("decoding '%s': %w", opts.Input, err)
	}
	return blocks, nil
}

// outputRange returns the address range to encode: the envelope of the
// decoded blocks unless base or size were given explicitly.
func outputRange(opts options.Program, blocks image.BlockList) (uint16, uint32) {
	start, size := blocks.Envelope()
	if opts.HasBase {
		start = opts.Base
	}
	if opts.HasSize {
		size = opts.Size
	}
	return start, size
}

// writeOutput runs the given write function against the output file, or
// stdout if no output file is configured.
func writeOutput(opts options.Program, write func(w io.Writer) error) error {
	if opts.Output == "" {
		return write(os.Stdout)
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", opts.Output, err)
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", opts.Output, err)
	}
	return nil
}
