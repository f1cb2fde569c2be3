// Package docstream turns a YAML input into the flat structural event
// sequence consumed by the document state machines. The machines never see
// the YAML library, they can equally be fed hand built event slices.
package docstream

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Kind enumerates the structural event vocabulary.
type Kind int

const (
	StreamStart Kind = iota
	StreamEnd
	DocumentStart
	DocumentEnd
	MappingStart
	MappingEnd
	Scalar
)

var kindNames = map[Kind]string{
	StreamStart:   "stream-start",
	StreamEnd:     "stream-end",
	DocumentStart: "document-start",
	DocumentEnd:   "document-end",
	MappingStart:  "mapping-start",
	MappingEnd:    "mapping-end",
	Scalar:        "scalar",
}

func (k Kind) String() string {
	return kindNames[k]
}

// Event is one token of a document parse. Value is only set for scalars,
// Line is the 1-based input line the event originates from.
type Event struct {
	Kind  Kind
	Value string
	Line  int
}

// Read parses all documents of the input and flattens them into one event
// sequence. Mapping keys and values both surface as scalar events in mapping
// order, nested mappings surface as nested mapping-start/mapping-end pairs.
// Sequences, aliases and non-scalar mapping keys are not part of the
// supported document subset.
func Read(r io.Reader) ([]Event, error) {
	events := []Event{{Kind: StreamStart}}

	dec := yaml.NewDecoder(r)
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing document: %w", err)
		}

		events = append(events, Event{Kind: DocumentStart, Line: doc.Line})
		for _, node := range doc.Content {
			events, err = flatten(events, node)
			if err != nil {
				return nil, err
			}
		}
		events = append(events, Event{Kind: DocumentEnd, Line: doc.Line})
	}

	events = append(events, Event{Kind: StreamEnd})
	return events, nil
}

// flatten appends the events of one node tree.
func flatten(events []Event, node *yaml.Node) ([]Event, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return append(events, Event{Kind: Scalar, Value: node.Value, Line: node.Line}), nil

	case yaml.MappingNode:
		events = append(events, Event{Kind: MappingStart, Line: node.Line})
		for i := 0; i < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: unsupported structure as mapping key", key.Line)
			}
			events = append(events, Event{Kind: Scalar, Value: key.Value, Line: key.Line})

			var err error
			events, err = flatten(events, node.Content[i+1])
			if err != nil {
				return nil, err
			}
		}
		return append(events, Event{Kind: MappingEnd, Line: node.Line}), nil

	default:
		return nil, fmt.Errorf("line %d: unsupported document structure", node.Line)
	}
}
