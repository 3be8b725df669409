package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/phil-mansfield/fofcat/lib/config"
	g_error "github.com/phil-mansfield/fofcat/lib/error"
	"github.com/phil-mansfield/fofcat/lib/export"
	"github.com/phil-mansfield/fofcat/lib/fofio"
	"github.com/phil-mansfield/fofcat/lib/logging"
	"github.com/phil-mansfield/fofcat/lib/summary"
	"github.com/phil-mansfield/fofcat/lib/thread"
)

func main() {
	// Parse arguements.
	mode, configFile, cmdArgs, err := config.ParseCommandLine(os.Args[1:])
	if err != nil { g_error.External("%s", err.Error()) }

	if mode == config.HelpMode {
		fmt.Print(config.Help())
		return
	}

	rawArgs, err := config.ParseConfigFile(configFile)
	if err != nil { g_error.External("%s", err.Error()) }
	rawArgs.Overwrite(cmdArgs)

	// Do processing that doesn't need external validation.
	args, err := rawArgs.Process()
	if err != nil { g_error.External("%s", err.Error()) }
	if err := args.CheckMode(mode); err != nil {
		g_error.External("%s", err.Error())
	}

	logging.Init(args.Debug, args.HumanLogs)
	args.Threads, err = thread.Set(args.Threads)
	if err != nil { g_error.External("%s", err.Error()) }

	// Run the chosen mode.
	if err := run(mode, args, os.Stdout); err != nil {
		g_error.External("%s", err.Error())
	}
}

// run runs fofcat in the given mode, writing output to wr.
func run(mode config.Mode, args *config.Args, wr io.Writer) error {
	switch mode {
	case config.HelpMode:
		_, err := fmt.Fprint(wr, config.Help())
		return err
	case config.CheckMode:
		return Check(args, wr)
	case config.SummaryMode:
		return Summary(args, wr)
	case config.MembersMode:
		return Members(args, wr)
	case config.ExportMode:
		return Export(args)
	}
	return fmt.Errorf("Internal error: mode %s has no implementation.", mode)
}

// forEachSnapshot calls f on every snapshot, args.Threads snapshots at a
// time. Each call writes to its own buffer and the buffers are copied to wr in
// snapshot order.
func forEachSnapshot(
	args *config.Args, wr io.Writer, f func(snap int, wr io.Writer) error,
) error {
	bufs := make([]bytes.Buffer, len(args.Snapshots))
	err := thread.ForEach(len(args.Snapshots), args.Threads, func(i int) error {
		return f(args.Snapshots[i], &bufs[i])
	})

	for i := range bufs {
		if _, werr := bufs[i].WriteTo(wr); werr != nil { return werr }
	}
	return err
}

// Check runs fofcat's "check" mode, which tests that every segment file of
// every snapshot exists and has the size its header says it should have.
func Check(args *config.Args, wr io.Writer) error {
	kinds := []fofio.Kind{ fofio.Tab }
	if args.Catalog.ReadIDs { kinds = append(kinds, fofio.IDs) }

	err := forEachSnapshot(args, wr, func(snap int, _ io.Writer) error {
		for _, kind := range kinds {
			hd, err := fofio.CheckCatalog(kind, args.BaseDir, snap,
				args.Catalog)
			if err != nil { return err }

			logging.L().Info().Int("snapshot", snap).Stringer("kind", kind).
				Uint32("files", hd.SegmentFileCount).
				Uint32("groups", hd.TotalGroupCount).
				Uint64("ids", hd.TotalIDCount).Msg("checked catalog")
		}
		return nil
	})
	if err != nil { return err }

	_, err = fmt.Fprintln(wr, "No errors detected.")
	return err
}

// Summary runs fofcat's "summary" mode, which reads every snapshot and prints
// statistics of its halos.
func Summary(args *config.Args, wr io.Writer) error {
	return forEachSnapshot(args, wr, func(snap int, wr io.Writer) error {
		cat, err := fofio.ReadCatalog(args.BaseDir, snap, args.Catalog)
		if err != nil { return err }
		return summary.Summarize(cat).Fprint(wr, snap)
	})
}

// Members runs fofcat's "members" mode, which prints the particle IDs of
// halo args.Halo in every snapshot, one per line.
func Members(args *config.Args, wr io.Writer) error {
	return forEachSnapshot(args, wr, func(snap int, wr io.Writer) error {
		cat, err := fofio.ReadCatalog(args.BaseDir, snap, args.Catalog)
		if err != nil { return err }

		ids, err := cat.Members(args.Halo)
		if err != nil {
			return fmt.Errorf("Snapshot %d: %w", snap, err)
		}

		fmt.Fprintf(wr, "# Snapshot %03d, halo %d, %d particles\n",
			snap, args.Halo, len(ids))
		for _, id := range ids { fmt.Fprintln(wr, id) }
		return nil
	})
}

// Export runs fofcat's "export" mode, which writes every snapshot's halos to
// a Parquet file in args.Output.
func Export(args *config.Args) error {
	c := args.Catalog
	c.ReadIDs = false
	return forEachSnapshot(args, io.Discard, func(snap int, _ io.Writer) error {
		cat, err := fofio.ReadGroupTab(args.BaseDir, snap, c)
		if err != nil { return err }
		_, err = export.WriteSnapshot(args.Output, snap, cat)
		return err
	})
}
