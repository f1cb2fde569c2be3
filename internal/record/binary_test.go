package record

import (
	"bytes"
	"testing"

	"github.com/retroenv/memboard/internal/image"
	"github.com/retroenv/retrogolib/assert"
)

func TestBinaryRoundTrip(t *testing.T) {
	src := image.New()
	payload := []byte{0xa9, 0x00, 0x8d, 0x20, 0xd0}
	src.SetDataRange(0, payload)

	var buf bytes.Buffer
	assert.NoError(t, WriteBinary(&buf, src, 0, uint32(len(payload))))
	assert.Equal(t, payload, buf.Bytes())

	dst := image.New()
	blocks, err := ReadBinary(&buf, dst)
	assert.NoError(t, err)

	assert.Equal(t, 1, len(blocks))
	assert.False(t, blocks[0].HasStart) // plain binary carries no address
	assert.Equal(t, uint32(len(payload)), blocks[0].Count)
	assert.Equal(t, payload, dst.DataRange(0, uint32(len(payload))))
}

func TestBinaryIgnoresAttributes(t *testing.T) {
	src := image.New()
	src.SetData(0, 0x12)
	src.SetAttr(0, image.AttrWritable)
	src.SetData(1, 0x34)

	var buf bytes.Buffer
	assert.NoError(t, WriteBinary(&buf, src, 0, 2))
	assert.Equal(t, []byte{0x12, 0x34}, buf.Bytes())
}

func TestReadBinaryErrors(t *testing.T) {
	_, err := ReadBinary(bytes.NewReader(nil), image.New())
	assert.ErrorContains(t, err, "empty input")

	_, err = ReadBinary(bytes.NewReader(make([]byte, image.AddressSpace+1)), image.New())
	assert.ErrorContains(t, err, "does not fit")
}

func TestPRGRoundTrip(t *testing.T) {
	const start = uint16(0xc000)

	src := image.New()
	payload := []byte{0x4c, 0x00, 0xc0}
	src.SetDataRange(start, payload)

	var buf bytes.Buffer
	assert.NoError(t, WritePRG(&buf, src, start, uint32(len(payload))))

	// little-endian load address prefix
	assert.Equal(t, byte(0x00), buf.Bytes()[0])
	assert.Equal(t, byte(0xc0), buf.Bytes()[1])

	dst := image.New()
	blocks, err := ReadPRG(&buf, dst)
	assert.NoError(t, err)

	assert.Equal(t, 1, len(blocks))
	assert.True(t, blocks[0].HasStart)
	assert.Equal(t, start, blocks[0].Start)
	assert.Equal(t, uint32(len(payload)), blocks[0].Count)
	assert.Equal(t, payload, dst.DataRange(start, uint32(len(payload))))
}

func TestReadPRGDoesNotFit(t *testing.T) {
	// load address 0xff00 with a 512 byte payload exceeds the address space
	input := append([]byte{0x00, 0xff}, make([]byte, 512)...)

	_, err := ReadPRG(bytes.NewReader(input), image.New())
	assert.ErrorContains(t, err, "does not fit")
}

func TestReadPRGTruncatedHeader(t *testing.T) {
	_, err := ReadPRG(bytes.NewReader([]byte{0x00}), image.New())
	assert.ErrorContains(t, err, "load address")
}

func TestRawRoundTrip(t *testing.T) {
	src := image.New()
	src.SetData(0x1234, 0x56)
	src.SetEnabled(0x1234, true)
	src.SetWritable(0x1234, true)

	var buf bytes.Buffer
	assert.NoError(t, WriteRaw(&buf, src))
	assert.Equal(t, image.BufferSize, buf.Len())

	dst := image.New()
	blocks, err := ReadRaw(&buf, dst)
	assert.NoError(t, err)

	assert.Equal(t, 1, len(blocks))
	assert.Equal(t, uint32(image.AddressSpace), blocks[0].Count)
	// raw preserves attribute bytes
	assert.Equal(t, byte(0x56), dst.Data(0x1234))
	assert.Equal(t, image.AttrWritable, dst.Attr(0x1234))
	assert.Equal(t, src.Bytes(), dst.Bytes())
}

func TestReadRawWrongSize(t *testing.T) {
	_, err := ReadRaw(bytes.NewReader(make([]byte, 100)), image.New())
	assert.ErrorContains(t, err, "expected")
}
