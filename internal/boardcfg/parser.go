package boardcfg

import (
	"errors"
	"fmt"
	"io"

	"github.com/retroenv/memboard/internal/docstream"
	"github.com/retroenv/memboard/internal/scan"
)

// state enumerates the parser states. The top-level keys radio, video and
// floppy route into per section sub states, the disk keys of the floppy
// section one level deeper.
type state int

const (
	stateStart state = iota
	stateStream
	stateDocument
	stateTopField

	stateRadioOpen
	stateRadioField
	stateRegionValue
	stateNameValue
	stateSecretValue

	stateVideoOpen
	stateVideoField
	stateStandardValue
	stateVideoOffsetValue

	stateFloppyOpen
	stateFloppyField
	stateFloppyEnabledValue
	stateDriveRAMValue
	stateDOSRAMValue
	stateOptionSwitchValue

	stateDiskOpen
	stateDiskField
	stateDiskFileValue
	stateDiskReadOnlyValue

	stateDocumentEnd
	stateDone
)

var topFields = map[string]state{
	"radio":  stateRadioOpen,
	"video":  stateVideoOpen,
	"floppy": stateFloppyOpen,
}

var radioFields = map[string]state{
	"region":       stateRegionValue,
	"network-name": stateNameValue,
	"secret":       stateSecretValue,
}

var videoFields = map[string]state{
	"video-standard": stateStandardValue,
	"video-offset":   stateVideoOffsetValue,
}

var floppyFields = map[string]state{
	"floppy-enabled": stateFloppyEnabledValue,
	"drive-ram":      stateDriveRAMValue,
	"dos-ram":        stateDOSRAMValue,
	"option-switch":  stateOptionSwitchValue,
}

var diskFields = map[string]state{
	"file":     stateDiskFileValue,
	"readonly": stateDiskReadOnlyValue,
}

// Parser consumes a structural event sequence and populates a board
// configuration record in place. Unlike the memory map parser it does not
// track keys it has already seen, a repeated key overwrites the earlier
// value. This asymmetry matches the board firmware and is kept on purpose.
type Parser struct {
	state  state
	disk   int // slot selected by the last diskN key
	config *Config
}

// NewParser creates a parser populating a fresh configuration record.
func NewParser() *Parser {
	return &Parser{
		state:  stateStart,
		config: &Config{},
	}
}

// Parse reads the input and returns the populated configuration record.
func Parse(r io.Reader) (*Config, error) {
	events, err := docstream.Read(r)
	if err != nil {
		return nil, err
	}

	parser := NewParser()
	for _, event := range events {
		if err := parser.Feed(event); err != nil {
			return nil, err
		}
	}
	return parser.Result()
}

// Feed advances the state machine by one event.
//
//nolint:cyclop,funlen // the transition table is flat on purpose
func (p *Parser) Feed(event docstream.Event) error {
	switch p.state {
	case stateStart:
		if event.Kind == docstream.StreamStart {
			p.state = stateStream
			return nil
		}

	case stateStream:
		switch event.Kind {
		case docstream.DocumentStart:
			p.state = stateDocument
			return nil
		case docstream.StreamEnd:
			p.state = stateDone
			return nil
		}

	case stateDocument:
		if event.Kind == docstream.MappingStart {
			p.state = stateTopField
			return nil
		}

	case stateTopField:
		switch event.Kind {
		case docstream.Scalar:
			return p.selectField(event, topFields)
		case docstream.MappingEnd:
			p.state = stateDocumentEnd
			return nil
		}

	case stateRadioOpen:
		if event.Kind == docstream.MappingStart {
			p.state = stateRadioField
			return nil
		}

	case stateRadioField:
		switch event.Kind {
		case docstream.Scalar:
			return p.selectField(event, radioFields)
		case docstream.MappingEnd:
			p.state = stateTopField
			return nil
		}

	case stateVideoOpen:
		if event.Kind == docstream.MappingStart {
			p.state = stateVideoField
			return nil
		}

	case stateVideoField:
		switch event.Kind {
		case docstream.Scalar:
			return p.selectField(event, videoFields)
		case docstream.MappingEnd:
			p.state = stateTopField
			return nil
		}

	case stateFloppyOpen:
		if event.Kind == docstream.MappingStart {
			p.state = stateFloppyField
			return nil
		}

	case stateFloppyField:
		switch event.Kind {
		case docstream.Scalar:
			return p.selectFloppyField(event)
		case docstream.MappingEnd:
			p.state = stateTopField
			return nil
		}

	case stateDiskOpen:
		if event.Kind == docstream.MappingStart {
			p.state = stateDiskField
			return nil
		}

	case stateDiskField:
		switch event.Kind {
		case docstream.Scalar:
			return p.selectField(event, diskFields)
		case docstream.MappingEnd:
			p.state = stateFloppyField
			return nil
		}

	case stateRegionValue, stateNameValue, stateSecretValue,
		stateStandardValue, stateVideoOffsetValue,
		stateFloppyEnabledValue, stateDriveRAMValue, stateDOSRAMValue,
		stateOptionSwitchValue, stateDiskFileValue, stateDiskReadOnlyValue:

		if event.Kind == docstream.Scalar {
			if err := p.storeField(event.Value); err != nil {
				return fmt.Errorf("line %d: %w", event.Line, err)
			}
			return nil
		}

	case stateDocumentEnd:
		if event.Kind == docstream.DocumentEnd {
			p.state = stateStream
			return nil
		}

	case stateDone:
	}

	return fmt.Errorf("line %d: unexpected %s event", event.Line, event.Kind)
}

// Result returns the configuration record after the stream has ended.
func (p *Parser) Result() (*Config, error) {
	if p.state != stateDone {
		return nil, errors.New("unterminated document stream")
	}
	return p.config, nil
}

// selectField routes a mapping key to its value state.
func (p *Parser) selectField(event docstream.Event, fields map[string]state) error {
	target, ok := fields[event.Value]
	if !ok {
		return fmt.Errorf("line %d: unexpected parameter '%s'", event.Line, event.Value)
	}
	p.state = target
	return nil
}

// selectFloppyField routes a floppy section key, including the numbered
// disk slot keys disk1 to disk4.
func (p *Parser) selectFloppyField(event docstream.Event) error {
	key := event.Value
	if len(key) == 5 && key[:4] == "disk" && key[4] >= '1' && key[4] <= '0'+DiskSlots {
		p.disk = int(key[4] - '1')
		p.state = stateDiskOpen
		return nil
	}
	return p.selectField(event, floppyFields)
}

// storeField converts and stores one scalar value, according to the value
// state selected by the preceding key. Afterwards the parser returns to the
// field state of the section the key belongs to.
func (p *Parser) storeField(value string) error {
	cfg := p.config

	switch p.state {
	case stateRegionValue:
		index, err := scan.Enum(value, regions)
		if err != nil {
			return fmt.Errorf("region: %w", err)
		}
		cfg.Radio.Region = regions[index]
		p.state = stateRadioField

	case stateNameValue:
		if len(value) > maxNameLen {
			return fmt.Errorf("network name longer than %d bytes", maxNameLen)
		}
		cfg.Radio.Name = value
		p.state = stateRadioField

	case stateSecretValue:
		if len(value) > maxSecretLen {
			return fmt.Errorf("network secret longer than %d bytes", maxSecretLen)
		}
		cfg.Radio.Secret = value
		p.state = stateRadioField

	case stateStandardValue:
		index, err := scan.Enum(value, videoStandards)
		if err != nil {
			return fmt.Errorf("video-standard: %w", err)
		}
		cfg.Video.Standard = videoStandards[index]
		p.state = stateVideoField

	case stateVideoOffsetValue:
		offset, err := scan.Uint(value, 0xffff)
		if err != nil {
			return fmt.Errorf("video-offset: %w", err)
		}
		cfg.Video.Offset = uint16(offset)
		p.state = stateVideoField

	case stateFloppyEnabledValue:
		enabled, err := scan.Bool(value)
		if err != nil {
			return fmt.Errorf("floppy-enabled: %w", err)
		}
		cfg.Floppy.Enabled = enabled
		p.state = stateFloppyField

	case stateDriveRAMValue:
		addr, err := scan.Uint(value, 0xffff)
		if err != nil {
			return fmt.Errorf("drive-ram: %w", err)
		}
		cfg.Floppy.DriveRAM = uint16(addr)
		p.state = stateFloppyField

	case stateDOSRAMValue:
		addr, err := scan.Uint(value, 0xffff)
		if err != nil {
			return fmt.Errorf("dos-ram: %w", err)
		}
		cfg.Floppy.DOSRAM = uint16(addr)
		p.state = stateFloppyField

	case stateOptionSwitchValue:
		enabled, err := scan.Bool(value)
		if err != nil {
			return fmt.Errorf("option-switch: %w", err)
		}
		cfg.Floppy.OptionSwitch = enabled
		p.state = stateFloppyField

	case stateDiskFileValue:
		cfg.Floppy.Disks[p.disk].File = value
		p.state = stateDiskField

	case stateDiskReadOnlyValue:
		readonly, err := scan.Bool(value)
		if err != nil {
			return fmt.Errorf("readonly: %w", err)
		}
		cfg.Floppy.Disks[p.disk].ReadOnly = readonly
		p.state = stateDiskField
	}
	return nil
}
