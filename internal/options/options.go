// Package options contains the program options.
package options

// Program contains the options of one command invocation.
type Program struct {
	Input  string // input image file
	Output string // output file, stdout if empty
	From   string // input format name
	To     string // output format name

	MapFile    string // memory map document
	ConfigFile string // board configuration document

	Base    uint16 // output base address
	HasBase bool
	Size    uint32 // output size in bytes
	HasSize bool

	JSON  bool
	Debug bool
	Quiet bool
}
