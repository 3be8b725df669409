/*package config handles fofcat's configuration. fofcat is run as

   $ fofcat <mode> <config file> [--<Name1> <Value1>] [--<Name2> <Value2>] ...

The config file is either an INI-style file:

   [fofcat]
   BaseDir = /path/to/sim
   Snapshots = 0..4 - 2

or a YAML file (ending in .yaml or .yml) with the same variables under a
top-level "fofcat" key. Variables given on the command line overwrite the ones
in the config file.
*/
package config

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/gcfg.v1"
	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/fofcat/lib/fofio"
	"github.com/phil-mansfield/fofcat/lib/format"
)

// RawArgs stores the unprocessed values which the user assigned to each config
// variable. An empty string means the variable wasn't set.
type RawArgs struct {
	FoFCat struct {
		BaseDir string `yaml:"BaseDir"`
		Snapshots string `yaml:"Snapshots"`
		LongIDs string `yaml:"LongIDs"`
		Swap string `yaml:"Swap"`
		SFR string `yaml:"SFR"`
		ReadIDs string `yaml:"ReadIDs"`
		DirPrefix string `yaml:"DirPrefix"`
		Debug string `yaml:"Debug"`
		HumanLogs string `yaml:"HumanLogs"`
		Halo string `yaml:"Halo"`
		Output string `yaml:"Output"`
		Threads string `yaml:"Threads"`
	} `gcfg:"fofcat" yaml:"fofcat"`
}

// Args stores configuration information. It is a post-processed version of
// RawArgs.
type Args struct {
	BaseDir string
	Snapshots []int
	Catalog fofio.Config
	Debug, HumanLogs bool
	Halo int
	Output string
	Threads int
}

// rawVar is a single variable in RawArgs.
type rawVar struct {
	name string
	value *string
	usage string
}

// vars returns every variable in args, in the order they're documented.
func (args *RawArgs) vars() []rawVar {
	c := &args.FoFCat
	return []rawVar{
		{"BaseDir", &c.BaseDir, "Directory containing the groups_<snap> " +
			"directories."},
		{"Snapshots", &c.Snapshots, "Snapshots to read, e.g. '0..4 - 2'."},
		{"LongIDs", &c.LongIDs, "true if particle IDs are 64 bits, false " +
			"if they're 32 bits."},
		{"Swap", &c.Swap, "true if the files have the opposite byte order " +
			"of this machine."},
		{"SFR", &c.SFR, "true if the tab files end with a star formation " +
			"rate block."},
		{"ReadIDs", &c.ReadIDs, "true if the ids files should be read."},
		{"DirPrefix", &c.DirPrefix, "Prefix of the group directories."},
		{"Debug", &c.Debug, "true to log every segment that's read."},
		{"HumanLogs", &c.HumanLogs, "true for human-readable logs, false " +
			"for JSON. Defaults to true on a terminal."},
		{"Halo", &c.Halo, "Index of the halo printed by the members mode."},
		{"Output", &c.Output, "Directory that the export mode writes to."},
		{"Threads", &c.Threads, "Number of snapshots read at once. -1 " +
			"means one per core."},
	}
}

// DefaultRawArgs returns the values used for variables which are set in
// neither the config file nor the command line.
func DefaultRawArgs() *RawArgs {
	args := &RawArgs{ }
	c := &args.FoFCat
	c.LongIDs, c.Swap, c.SFR, c.ReadIDs = "false", "false", "false", "true"
	c.DirPrefix = fofio.DefaultConfig.DirPrefix
	c.Debug, c.Halo, c.Threads = "false", "-1", "1"
	return args
}

// ParseCommandLine parses the command line arguments (without the program
// name) and returns the mode fofcat is being run in, the name of the config
// file, and any arguments which were set. Expects that the arguments are
// presented in the order:
// $ fofcat <mode> <config file> [--<Arg1> <Value1>] [--<Arg2> <Value2>]
// The help mode doesn't need a config file.
func ParseCommandLine(
	argv []string,
) (mode Mode, configFile string, args *RawArgs, err error) {
	if len(argv) == 0 {
		return 0, "", nil, fmt.Errorf("No mode was given. Run " +
			"'fofcat help' to see the list of modes.")
	}

	mode, err = ParseMode(argv[0])
	if err != nil { return 0, "", nil, err }
	args = &RawArgs{ }
	if mode == HelpMode { return mode, "", args, nil }

	if len(argv) < 2 || strings.HasPrefix(argv[1], "-") {
		return 0, "", nil, fmt.Errorf("The %s mode needs a config file " +
			"after the mode name.", mode)
	}
	configFile = argv[1]

	fs := flag.NewFlagSet("fofcat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, v := range args.vars() {
		fs.StringVar(v.value, v.name, "", v.usage)
	}
	if err := fs.Parse(argv[2:]); err != nil {
		return 0, "", nil, fmt.Errorf("The command line arguments after " +
			"the config file could not be parsed: %s", err.Error())
	} else if fs.NArg() > 0 {
		return 0, "", nil, fmt.Errorf("The command line argument '%s' " +
			"isn't a --<Name> <Value> pair.", fs.Arg(0))
	}

	return mode, configFile, args, nil
}

// ParseConfigFile parses arguments from a config file.
func ParseConfigFile(fileName string) (*RawArgs, error) {
	args := &RawArgs{ }

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(fileName)
		if err != nil {
			return nil, fmt.Errorf("The config file %s could not be read: %w",
				fileName, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(args); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("The YAML config file %s could not be " +
				"parsed: %w", fileName, err)
		}
	default:
		if err := gcfg.ReadFileInto(args, fileName); err != nil {
			return nil, fmt.Errorf("The config file %s could not be " +
				"parsed: %w", fileName, err)
		}
	}

	return args, nil
}

// Overwrite arguments in arg1 which have been set in arg2.
func (arg1 *RawArgs) Overwrite(arg2 *RawArgs) {
	vars1, vars2 := arg1.vars(), arg2.vars()
	for i := range vars1 {
		if *vars2[i].value != "" { *vars1[i].value = *vars2[i].value }
	}
}

// Process converts the raw user input to a format which is more useful for
// internal functions. Variables which weren't set take their values from
// DefaultRawArgs. Very simple validation will be done here, but nothing
// which requires interacting with external files.
func (args *RawArgs) Process() (*Args, error) {
	full := DefaultRawArgs()
	full.Overwrite(args)
	c := &full.FoFCat
	out := &Args{ BaseDir: c.BaseDir, Output: c.Output }
	out.Catalog = fofio.DefaultConfig

	if c.BaseDir == "" {
		return nil, fmt.Errorf("BaseDir was not set.")
	} else if c.Snapshots == "" {
		return nil, fmt.Errorf("Snapshots was not set.")
	}

	var err error
	out.Snapshots, err = format.ExpandSnapshotFormat(c.Snapshots)
	if err != nil { return nil, err }

	bools := []struct{
		name, value string
		out *bool
	} {
		{"Swap", c.Swap, &out.Catalog.Swap},
		{"SFR", c.SFR, &out.Catalog.SFR},
		{"ReadIDs", c.ReadIDs, &out.Catalog.ReadIDs},
		{"Debug", c.Debug, &out.Debug},
	}
	for _, b := range bools {
		if *b.out, err = parseBool(b.name, b.value); err != nil {
			return nil, err
		}
	}

	longIDs, err := parseBool("LongIDs", c.LongIDs)
	if err != nil { return nil, err }
	if longIDs {
		out.Catalog.IDWidth = fofio.IDWidth64
	} else {
		out.Catalog.IDWidth = fofio.IDWidth32
	}

	if c.DirPrefix != "" { out.Catalog.DirPrefix = c.DirPrefix }

	if c.HumanLogs == "" {
		fd := os.Stderr.Fd()
		out.HumanLogs = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	} else {
		out.HumanLogs, err = parseBool("HumanLogs", c.HumanLogs)
		if err != nil { return nil, err }
	}

	ints := []struct{
		name, value string
		out *int
	} {
		{"Halo", c.Halo, &out.Halo},
		{"Threads", c.Threads, &out.Threads},
	}
	for _, x := range ints {
		*x.out, err = strconv.Atoi(x.value)
		if err != nil {
			return nil, fmt.Errorf("%s was set to '%s', which isn't an " +
				"integer.", x.name, x.value)
		}
	}

	return out, nil
}

// CheckMode checks that the variables needed by a mode have been set.
func (args *Args) CheckMode(mode Mode) error {
	switch mode {
	case MembersMode:
		if args.Halo < 0 {
			return fmt.Errorf("The members mode needs Halo to be set to a " +
				"non-negative halo index, but it's %d.", args.Halo)
		} else if !args.Catalog.ReadIDs {
			return fmt.Errorf("The members mode needs ReadIDs = true.")
		}
	case ExportMode:
		if args.Output == "" {
			return fmt.Errorf("The export mode needs Output to be set.")
		}
	}
	return nil
}

func parseBool(name, value string) (bool, error) {
	x, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%s was set to '%s', which isn't true " +
			"or false.", name, value)
	}
	return x, nil
}

// Help returns the help text describing the modes and variables.
func Help() string {
	sb := &strings.Builder{ }
	fmt.Fprintln(sb, "Usage: fofcat <mode> <config file> " +
		"[--<Name> <Value>] ...")
	fmt.Fprintln(sb, "\nModes:")
	for _, m := range Modes {
		fmt.Fprintf(sb, "  %-8s %s\n", m, m.Description())
	}
	fmt.Fprintln(sb, "\nVariables ([fofcat] section of the config file):")
	for _, v := range (&RawArgs{ }).vars() {
		fmt.Fprintf(sb, "  %-10s %s\n", v.name, v.usage)
	}
	return sb.String()
}
