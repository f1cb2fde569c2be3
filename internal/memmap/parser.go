package memmap

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/retroenv/memboard/internal/docstream"
	"github.com/retroenv/memboard/internal/image"
	"github.com/retroenv/memboard/internal/scan"
	"github.com/retroenv/retrogolib/set"
)

// state enumerates the parser states. The progression is linear with one
// branch point: a scalar in stateFieldName selects the value state of the
// recognized key, the value state consumes exactly one scalar and returns
// to stateFieldName.
type state int

const (
	stateStart state = iota
	stateStream
	stateDocument
	stateFieldName
	stateStartValue
	stateEndValue
	stateTypeValue
	stateEnabledValue
	stateFillValue
	stateDataValue
	stateFileValue
	stateDocumentEnd
	stateDone
)

// fieldStates maps recognized document keys to their value states.
var fieldStates = map[string]state{
	"start":   stateStartValue,
	"end":     stateEndValue,
	"type":    stateTypeValue,
	"enabled": stateEnabledValue,
	"fill":    stateFillValue,
	"data":    stateDataValue,
	"file":    stateFileValue,
}

// Parser consumes a structural event sequence and produces one segment per
// document. All parse state lives in the parser object, segments accumulate
// in document order.
type Parser struct {
	state    state
	current  *Segment
	seen     set.Set[string] // keys already set in the current document
	segments []*Segment
}

// NewParser creates a parser for one event stream.
func NewParser() *Parser {
	return &Parser{
		state: stateStart,
	}
}

// Parse reads all documents of the input and returns the validated segment
// list. The first error aborts the parse, no partial list is returned.
func Parse(r io.Reader) ([]*Segment, error) {
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
			p.current = &Segment{}
			p.seen = set.New[string]()
			p.state = stateDocument
			return nil
		case docstream.StreamEnd:
			p.state = stateDone
			return nil
		}

	case stateDocument:
		if event.Kind == docstream.MappingStart {
			p.state = stateFieldName
			return nil
		}

	case stateFieldName:
		switch event.Kind {
		case docstream.Scalar:
			return p.selectField(event)
		case docstream.MappingEnd:
			p.state = stateDocumentEnd
			return nil
		}

	case stateStartValue, stateEndValue, stateTypeValue, stateEnabledValue,
		stateFillValue, stateDataValue, stateFileValue:

		if event.Kind == docstream.Scalar {
			if err := p.storeField(event.Value); err != nil {
				return fmt.Errorf("line %d: %w", event.Line, err)
			}
			p.state = stateFieldName
			return nil
		}

	case stateDocumentEnd:
		if event.Kind == docstream.DocumentEnd {
			if err := p.finishDocument(); err != nil {
				return fmt.Errorf("line %d: %w", event.Line, err)
			}
			p.state = stateStream
			return nil
		}

	case stateDone:
	}

	return fmt.Errorf("line %d: unexpected %s event", event.Line, event.Kind)
}

// Result returns the accumulated segment list after the stream has ended.
func (p *Parser) Result() ([]*Segment, error) {
	if p.state != stateDone {
		return nil, errors.New("unterminated document stream")
	}
	return p.segments, nil
}

// selectField routes a mapping key to its value state and tracks that the
// key has been used in the current document.
func (p *Parser) selectField(event docstream.Event) error {
	key := event.Value
	target, ok := fieldStates[key]
	if !ok {
		return fmt.Errorf("line %d: unexpected parameter '%s'", event.Line, key)
	}
	if p.seen.Contains(key) {
		return fmt.Errorf("line %d: duplicate parameter '%s'", event.Line, key)
	}
	p.seen.Add(key)
	p.state = target
	return nil
}

// storeField converts and stores one field value, according to the value
// state selected by the preceding key.
func (p *Parser) storeField(value string) error {
	seg := p.current

	switch p.state {
	case stateStartValue:
		start, err := scan.Uint(value, 0xffff)
		if err != nil {
			return fmt.Errorf("start: %w", err)
		}
		seg.Start = uint16(start)

	case stateEndValue:
		end, err := scan.Uint(value, 0xffff)
		if err != nil {
			return fmt.Errorf("end: %w", err)
		}
		v := uint16(end)
		seg.End = &v

	case stateTypeValue:
		index, err := scan.Enum(value, memoryTypes)
		if err != nil {
			return fmt.Errorf("type: %w", err)
		}
		readonly := index == 1
		seg.ReadOnly = &readonly

	case stateEnabledValue:
		enabled, err := scan.Bool(value)
		if err != nil {
			return fmt.Errorf("enabled: %w", err)
		}
		seg.Enabled = &enabled

	case stateFillValue:
		fill, err := scan.Uint(value, 0xff)
		if err != nil {
			return fmt.Errorf("fill: %w", err)
		}
		v := byte(fill)
		seg.Fill = &v

	case stateDataValue:
		data, err := parseDataBytes(value)
		if err != nil {
			return fmt.Errorf("data: %w", err)
		}
		seg.Data = data

	case stateFileValue:
		seg.File = value
	}
	return nil
}

// parseDataBytes converts a scalar of whitespace separated hex byte tokens.
func parseDataBytes(value string) ([]byte, error) {
	tokens := strings.Fields(value)
	if len(tokens) == 0 {
		return nil, errors.New("no data bytes")
	}
	data := make([]byte, len(tokens))
	for i, token := range tokens {
		if len(token) != 2 {
			return nil, fmt.Errorf("invalid data byte: '%s'", token)
		}
		b, err := scan.HexByte(token)
		if err != nil {
			return nil, err
		}
		data[i] = b
	}
	return data, nil
}

// finishDocument validates the current segment, derives its size and
// appends it to the list.
func (p *Parser) finishDocument() error {
	seg := p.current

	if !p.seen.Contains("start") {
		return errors.New("missing start parameter")
	}
	if seg.End != nil && *seg.End < seg.Start {
		return fmt.Errorf("end address %04X before start address %04X", *seg.End, seg.Start)
	}
	if seg.End == nil && seg.Data == nil && seg.File == "" {
		return errors.New("one of end, data or file is required")
	}
	if seg.Data != nil && seg.File != "" {
		return errors.New("data and file are mutually exclusive")
	}
	if seg.Fill != nil && seg.End == nil {
		return errors.New("fill requires end")
	}
	if seg.Data == nil && seg.File == "" && seg.Fill == nil &&
		seg.Enabled == nil && seg.ReadOnly == nil {

		return errors.New("segment has no effect")
	}

	count, err := deriveCount(seg)
	if err != nil {
		return err
	}
	seg.Count = count

	if uint32(seg.Start)+seg.Count > image.AddressSpace {
		return fmt.Errorf("segment exceeds the address space: start %04X, %d bytes",
			seg.Start, seg.Count)
	}
	if seg.End != nil {
		span := uint32(*seg.End) - uint32(seg.Start) + 1
		if span < seg.Count {
			return fmt.Errorf("end address %04X implies %d bytes, segment content has %d",
				*seg.End, span, seg.Count)
		}
	}

	p.segments = append(p.segments, seg)
	p.current = nil
	return nil
}

// deriveCount determines the segment size from inline data, the size of the
// referenced file (stat only, the content is read at build time) or the
// address range.
func deriveCount(seg *Segment) (uint32, error) {
	switch {
	case seg.Data != nil:
		return uint32(len(seg.Data)), nil

	case seg.File != "":
		info, err := os.Stat(seg.File)
		if err != nil {
			return 0, fmt.Errorf("reading size of file '%s': %w", seg.File, err)
		}
		size := info.Size()
		if size == 0 {
			return 0, fmt.Errorf("file '%s' is empty", seg.File)
		}
		if size > image.AddressSpace {
			return 0, fmt.Errorf("file '%s' has %d bytes and cannot fit the address space",
				seg.File, size)
		}
		return uint32(size), nil

	default:
		return uint32(*seg.End) - uint32(seg.Start) + 1, nil
	}
}
