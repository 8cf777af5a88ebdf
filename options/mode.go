package options

import (
	"fmt"
	"strings"
)

const (
	// ToolBin is the executable name used in reconstructed command lines
	ToolBin = "hpg-aligner"
	// ToolName is the display name printed by --version
	ToolName = "HPG-Aligner"
	// ToolVersion is the released version of the aligner front end
	ToolVersion = "2.1.0-beta"
)

// Mode selects the schema and defaults that apply to a run
type Mode int

const (
	DNA Mode = iota
	RNA
	Bisulfite
)

// ModeSpec describes one operating mode
type ModeSpec struct {
	Mode    Mode
	Command string   // subcommand name, e.g. "dna"
	Aliases []string // extra spellings accepted by ParseMode
	Short   string   // one-line help for the subcommand
}

var Modes = []ModeSpec{
	{
		Mode:    DNA,
		Command: "dna",
		Short:   "Map DNA-seq reads against a genome index",
	},
	{
		Mode:    RNA,
		Command: "rna",
		Short:   "Map RNA-seq reads, allowing spliced alignments across introns",
	},
	{
		Mode:    Bisulfite,
		Command: "bs",
		Aliases: []string{"bisulfite", "bisulphite"},
		Short:   "Map bisulfite-treated reads against a converted index",
	},
}

// Valid reports whether m is one of the recognized modes
func (m Mode) Valid() bool {
	return m >= DNA && m <= Bisulfite
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return Modes[m].Command
}

// ParseMode returns the mode for a command name or alias (case-insensitive)
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, spec := range Modes {
		if spec.Command == name {
			return spec.Mode, nil
		}
		for _, alias := range spec.Aliases {
			if alias == name {
				return spec.Mode, nil
			}
		}
	}
	return 0, &SchemaError{Mode: name}
}
