package memmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/memboard/internal/docstream"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseSingleSegment(t *testing.T) {
	input := "start: 0x1800\nend: 0x1fff\ntype: rom\nenabled: true\n"

	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	assert.Equal(t, 1, len(segments))
	seg := segments[0]
	assert.Equal(t, uint16(0x1800), seg.Start)
	assert.NotNil(t, seg.End)
	assert.Equal(t, uint16(0x1fff), *seg.End)
	assert.NotNil(t, seg.Enabled)
	assert.True(t, *seg.Enabled)
	assert.NotNil(t, seg.ReadOnly)
	assert.True(t, *seg.ReadOnly)
	assert.Equal(t, uint32(0x800), seg.Count)
}

func TestParseDocumentOrderIsPreserved(t *testing.T) {
	input := "start: 0x2000\nend: 0x2fff\ntype: ram\n" +
		"---\n" +
		"start: 0x1000\nend: 0x1fff\ntype: rom\n"

	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	// segments accumulate in document order, unlike decoded block lists
	assert.Equal(t, 2, len(segments))
	assert.Equal(t, uint16(0x2000), segments[0].Start)
	assert.Equal(t, uint16(0x1000), segments[1].Start)
}

func TestParseInlineData(t *testing.T) {
	input := "start: 0xc000\ndata: a9 00 8d 20 d0\ntype: rom\n"

	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	assert.Equal(t, 1, len(segments))
	assert.Equal(t, []byte{0xa9, 0x00, 0x8d, 0x20, 0xd0}, segments[0].Data)
	assert.Equal(t, uint32(5), segments[0].Count)
}

func TestParseFileSegment(t *testing.T) {
	name := filepath.Join(t.TempDir(), "rom.bin")
	assert.NoError(t, os.WriteFile(name, make([]byte, 2048), 0o644))

	input := "start: 0x1800\nfile: " + name + "\ntype: rom\n"

	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	// size is determined by stat, the content is not read at parse time
	assert.Equal(t, uint32(2048), segments[0].Count)
	assert.Equal(t, name, segments[0].File)
}

func TestParseValidationFailures(t *testing.T) {
	name := filepath.Join(t.TempDir(), "rom.bin")
	assert.NoError(t, os.WriteFile(name, make([]byte, 16), 0o644))

	tests := []struct {
		name       string
		input      string
		errContain string
	}{
		{
			name:       "missing start",
			input:      "end: 0x1fff\ntype: rom\n",
			errContain: "missing start",
		},
		{
			name:       "end before start",
			input:      "start: 0x2000\nend: 0x1fff\ntype: ram\n",
			errContain: "before start address",
		},
		{
			name:       "no range and no content",
			input:      "start: 0x1000\ntype: ram\n",
			errContain: "one of end, data or file",
		},
		{
			name:       "data and file are exclusive",
			input:      "start: 0x1000\ndata: 01 02\nfile: " + name + "\n",
			errContain: "mutually exclusive",
		},
		{
			name:       "fill requires end",
			input:      "start: 0x1000\ndata: 01 02\nfill: 0xea\n",
			errContain: "fill requires end",
		},
		{
			name:       "no-op document",
			input:      "start: 0x1000\nend: 0x1fff\n",
			errContain: "no effect",
		},
		{
			name:       "address space overflow",
			input:      "start: 0xffff\ndata: 01 02\ntype: rom\n",
			errContain: "exceeds the address space",
		},
		{
			name:       "end smaller than content",
			input:      "start: 0x1000\nend: 0x1001\ndata: 01 02 03 04\n",
			errContain: "implies 2 bytes",
		},
		{
			name:       "unknown parameter",
			input:      "start: 0x1000\nlength: 16\n",
			errContain: "unexpected parameter 'length'",
		},
		{
			name:       "duplicate parameter",
			input:      "start: 0x1000\nstart: 0x2000\n",
			errContain: "duplicate parameter 'start'",
		},
		{
			name:       "bad start value",
			input:      "start: 0x10000\nend: 0x1fff\ntype: ram\n",
			errContain: "start",
		},
		{
			name:       "bad enabled value",
			input:      "start: 0x1000\nend: 0x1fff\nenabled: maybe\n",
			errContain: "enabled",
		},
		{
			name:       "bad type value",
			input:      "start: 0x1000\nend: 0x1fff\ntype: flash\n",
			errContain: "type",
		},
		{
			name:       "bad data byte",
			input:      "start: 0x1000\ndata: 01 2 03\n",
			errContain: "invalid data byte",
		},
		{
			name:       "missing file",
			input:      "start: 0x1000\nfile: /nonexistent/rom.bin\n",
			errContain: "reading size of file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := Parse(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.errContain)
			assert.Nil(t, segments)
		})
	}
}

func TestParseFailureDiscardsEarlierDocuments(t *testing.T) {
	input := "start: 0x1000\nend: 0x1fff\ntype: ram\n" +
		"---\n" +
		"end: 0x2fff\n"

	segments, err := Parse(strings.NewReader(input))
	assert.Error(t, err)
	assert.Nil(t, segments)
}

func TestFeedHandBuiltEvents(t *testing.T) {
	events := []docstream.Event{
		{Kind: docstream.StreamStart},
		{Kind: docstream.DocumentStart},
		{Kind: docstream.MappingStart},
		{Kind: docstream.Scalar, Value: "start"},
		{Kind: docstream.Scalar, Value: "0x4000"},
		{Kind: docstream.Scalar, Value: "end"},
		{Kind: docstream.Scalar, Value: "0x7fff"},
		{Kind: docstream.Scalar, Value: "type"},
		{Kind: docstream.Scalar, Value: "ram"},
		{Kind: docstream.Scalar, Value: "enabled"},
		{Kind: docstream.Scalar, Value: "true"},
		{Kind: docstream.MappingEnd},
		{Kind: docstream.DocumentEnd},
		{Kind: docstream.StreamEnd},
	}

	parser := NewParser()
	for _, event := range events {
		assert.NoError(t, parser.Feed(event))
	}

	segments, err := parser.Result()
	assert.NoError(t, err)
	assert.Equal(t, 1, len(segments))
	assert.Equal(t, uint32(0x4000), segments[0].Count)
	assert.False(t, *segments[0].ReadOnly)
}

func TestResultUnterminatedStream(t *testing.T) {
	parser := NewParser()
	assert.NoError(t, parser.Feed(docstream.Event{Kind: docstream.StreamStart}))
	assert.NoError(t, parser.Feed(docstream.Event{Kind: docstream.DocumentStart}))

	segments, err := parser.Result()
	assert.ErrorContains(t, err, "unterminated")
	assert.Nil(t, segments)
}

func TestFeedUnexpectedEvent(t *testing.T) {
	parser := NewParser()
	assert.NoError(t, parser.Feed(docstream.Event{Kind: docstream.StreamStart}))

	err := parser.Feed(docstream.Event{Kind: docstream.MappingEnd, Line: 3})
	assert.ErrorContains(t, err, "unexpected mapping-end event")
}
