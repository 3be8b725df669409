package config

import (
	"fmt"
	"strings"
)

// Mode is the mode fofcat is being run in.
type Mode int
const (
	HelpMode Mode = iota
	CheckMode
	SummaryMode
	MembersMode
	ExportMode
)

// Modes lists every mode in the order the help text shows them.
var Modes = []Mode{ HelpMode, CheckMode, SummaryMode, MembersMode, ExportMode }

func (m Mode) String() string {
	switch m {
	case HelpMode: return "help"
	case CheckMode: return "check"
	case SummaryMode: return "summary"
	case MembersMode: return "members"
	case ExportMode: return "export"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Description is a one-line description of the mode.
func (m Mode) Description() string {
	switch m {
	case HelpMode: return "Prints this message."
	case CheckMode: return "Checks the config and that every snapshot's " +
		"segment files exist."
	case SummaryMode: return "Reads every snapshot and prints halo statistics."
	case MembersMode: return "Prints the particle IDs of halo Halo."
	case ExportMode: return "Writes every snapshot's halos to Parquet files " +
		"in Output."
	}
	return ""
}

// ParseMode converts a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(name, m.String()) { return m, nil }
	}
	return 0, fmt.Errorf("'%s' isn't a recognized mode. Run 'fofcat help' " +
		"to see the list of modes.", name)
}
