// Package boardcfg parses the board configuration document: radio, video
// and floppy controller settings.
package boardcfg

// DiskSlots is the number of disk slots of the emulated floppy controller.
const DiskSlots = 4

// Credential limits of the board's radio module.
const (
	maxNameLen   = 32
	maxSecretLen = 64
)

var regions = []string{"eu", "us", "jp"}

var videoStandards = []string{"pal", "ntsc"}

// Radio holds the region and network join settings.
type Radio struct {
	Region string `json:"region,omitempty"`
	Name   string `json:"networkName,omitempty"`
	Secret string `json:"secret,omitempty"`
}

// Video holds the video output settings.
type Video struct {
	Standard string `json:"standard,omitempty"`
	Offset   uint16 `json:"offset"`
}

// Disk is one disk slot of the floppy controller.
type Disk struct {
	File     string `json:"file,omitempty"`
	ReadOnly bool   `json:"readonly"`
}

// Floppy holds the floppy controller settings.
type Floppy struct {
	Enabled      bool            `json:"enabled"`
	DriveRAM     uint16          `json:"driveRam"`
	DOSRAM       uint16          `json:"dosRam"`
	OptionSwitch bool            `json:"optionSwitch"`
	Disks        [DiskSlots]Disk `json:"disks"`
}

// Config is the fixed shape board configuration record. A parse populates
// it destructively in place, later documents of a stream overwrite fields
// set by earlier ones.
type Config struct {
	Radio  Radio  `json:"radio"`
	Video  Video  `json:"video"`
	Floppy Floppy `json:"floppy"`
}
