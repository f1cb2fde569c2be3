package fileprocessor

import (
	"fmt"
	"os"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/retroenv/memboard/internal/boardcfg"
	"github.com/retroenv/memboard/internal/image"
	"github.com/retroenv/memboard/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Inspect decodes the input image file and reports the block list in its
// decoded order.
func Inspect(logger *log.Logger, opts options.Program) error {
	img := image.New()
	blocks, err := decodeInput(opts, img)
	if err != nil {
		return err
	}

	if opts.JSON {
		return dumpJSON(blocks)
	}

	logger.Info("Decoded image",
		log.String("format", opts.From),
		log.Int("blocks", len(blocks)))
	for i, block := range blocks {
		if block.HasStart {
			logger.Info(fmt.Sprintf("Block %d", i),
				log.Hex("start", block.Start),
				log.Int("count", int(block.Count)))
		} else {
			logger.Info(fmt.Sprintf("Block %d", i),
				log.String("start", "none"),
				log.Int("count", int(block.Count)))
		}
	}
	return nil
}

// ShowConfig parses and validates a board configuration document and
// reports the resulting record.
func ShowConfig(logger *log.Logger, opts options.Program) error {
	file, err := os.Open(opts.ConfigFile)
	if err != nil {
		return fmt.Errorf("opening file '%s': %w", opts.ConfigFile, err)
	}
	cfg, err := boardcfg.Parse(file)
	_ = file.Close()
	if err != nil {
		return fmt.Errorf("parsing configuration '%s': %w", opts.ConfigFile, err)
	}

	if opts.JSON {
		return dumpJSON(cfg)
	}

	logger.Info("Radio",
		log.String("region", cfg.Radio.Region),
		log.String("network", cfg.Radio.Name))
	logger.Info("Video",
		log.String("standard", cfg.Video.Standard),
		log.Hex("offset", cfg.Video.Offset))
	logger.Info("Floppy",
		log.String("enabled", strconv.FormatBool(cfg.Floppy.Enabled)),
		log.Hex("drive_ram", cfg.Floppy.DriveRAM),
		log.Hex("dos_ram", cfg.Floppy.DOSRAM),
		log.String("option_switch", strconv.FormatBool(cfg.Floppy.OptionSwitch)))
	for i, disk := range cfg.Floppy.Disks {
		if disk.File == "" {
			continue
		}
		logger.Info(fmt.Sprintf("Disk %d", i+1),
			log.String("file", disk.File),
			log.String("readonly", strconv.FormatBool(disk.ReadOnly)))
	}
	return nil
}

// dumpJSON writes the indented JSON representation of v to stdout.
func dumpJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling to JSON: %w", err)
	}
	if _, err := fmt.Fprintln(os.Stdout, string(data)); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
