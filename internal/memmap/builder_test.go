package memmap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/memboard/internal/image"
	"github.com/retroenv/retrogolib/assert"
)

func TestBuildRomFileSegment(t *testing.T) {
	content := make([]byte, 2048)
	for i := range content {
		content[i] = byte(i * 3)
	}
	name := filepath.Join(t.TempDir(), "rom.bin")
	assert.NoError(t, os.WriteFile(name, content, 0o644))

	input := "start: 0x1800\nend: 0x1fff\nenabled: true\ntype: rom\nfile: " + name + "\n"

	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)
	assert.Equal(t, uint32(2048), segments[0].Count)

	img := image.New()
	assert.NoError(t, Build(img, segments))

	// file contents interleaved with attribute 0 (enabled, read-only)
	buf := img.Bytes()
	for i := range 2048 {
		assert.Equal(t, content[i], buf[(0x1800+i)*2])
		assert.Equal(t, byte(0), buf[(0x1800+i)*2+1])
	}

	// surrounding cells keep the image defaults
	assert.Equal(t, image.AttrDisabled, img.Attr(0x17ff))
	assert.Equal(t, image.AttrDisabled, img.Attr(0x2000))
}

func TestBuildInlineData(t *testing.T) {
	input := "start: 0xfffa\ndata: 00 80 00 80 00 80\ntype: rom\n"

	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	img := image.New()
	assert.NoError(t, Build(img, segments))

	assert.Equal(t, []byte{0x00, 0x80, 0x00, 0x80, 0x00, 0x80}, img.DataRange(0xfffa, 6))
}

func TestBuildFill(t *testing.T) {
	input := "start: 0x0400\nend: 0x07ff\nfill: 0xea\ntype: ram\nenabled: true\n"

	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	img := image.New()
	assert.NoError(t, Build(img, segments))

	for addr := uint16(0x0400); addr <= 0x07ff; addr++ {
		assert.Equal(t, byte(0xea), img.Data(addr))
		assert.Equal(t, image.AttrWritable, img.Attr(addr)) // enabled, writable
	}
}

func TestBuildTriStateLeavesAttributes(t *testing.T) {
	// no enabled and no type key: only data is written, attributes stay
	input := "start: 0x3000\ndata: 01 02\nfill: 0x00\nend: 0x3001\n"

	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	img := image.New()
	img.SetEnabled(0x3000, true)
	assert.NoError(t, Build(img, segments))

	assert.Equal(t, byte(0), img.Attr(0x3000))
	assert.Equal(t, image.AttrDisabled, img.Attr(0x3001))
}

func TestBuildFileSizeChanged(t *testing.T) {
	name := filepath.Join(t.TempDir(), "rom.bin")
	assert.NoError(t, os.WriteFile(name, make([]byte, 64), 0o644))

	input := "start: 0x1000\nfile: " + name + "\ntype: rom\n"
	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	// shrink the file between parse and build
	assert.NoError(t, os.WriteFile(name, make([]byte, 32), 0o644))

	err = Build(image.New(), segments)
	assert.ErrorContains(t, err, "expected 64")
}

func TestEnvelope(t *testing.T) {
	input := "start: 0x8000\nend: 0x8fff\ntype: rom\n" +
		"---\n" +
		"start: 0x1000\ndata: 01 02 03 04\n"

	segments, err := Parse(strings.NewReader(input))
	assert.NoError(t, err)

	start, size := Envelope(segments)
	assert.Equal(t, uint16(0x1000), start)
	assert.Equal(t, uint32(0x9000-0x1000), size)
}
