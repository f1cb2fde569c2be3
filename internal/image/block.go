package image

// Block describes one contiguous run of bytes produced while decoding an
// input file. Start is only meaningful if HasStart is set; a block without a
// start address is a degenerate legacy case produced by the plain binary
// codec, every record decoder sets it.
type Block struct {
	HasStart bool   `json:"hasStart"`
	Start    uint16 `json:"start"`
	Count    uint32 `json:"count"` // >= 1
}

// BlockList holds the blocks of one decode operation.
//
// Record decoders prepend newly discovered blocks, so after decoding a
// record file the list is in reverse file order. Downstream consumers rely
// on this ordering, it is a documented contract and must not change.
type BlockList []Block

// Prepend inserts a block at the head of the list.
func (l *BlockList) Prepend(b Block) {
	*l = append(*l, Block{})
	copy((*l)[1:], *l)
	(*l)[0] = b
}

// Envelope returns the lowest start address of the list and the total size
// of the address range covered by it, including any gaps between blocks.
// An empty list has an empty envelope.
func (l BlockList) Envelope() (uint16, uint32) {
	if len(l) == 0 {
		return 0, 0
	}
	var (
		low  uint32 = AddressSpace
		high uint32
	)
	for _, b := range l {
		start := uint32(b.Start)
		if !b.HasStart {
			start = 0
		}
		if start < low {
			low = start
		}
		if end := start + b.Count; end > high {
			high = end
		}
	}
	return uint16(low), high - low
}
