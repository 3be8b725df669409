package fofio

import (
	"fmt"
	"path/filepath"
)

// GroupDir returns the directory holding the segment files of a snapshot.
func GroupDir(baseDir string, snap int, config ...Config) string {
	c, _ := getConfig(config)
	return filepath.Join(baseDir, fmt.Sprintf("%s%03d", c.DirPrefix, snap))
}

// FileName returns the name of segment file k of the given kind.
func FileName(kind Kind, baseDir string, snap, k int, config ...Config) string {
	var base string
	switch kind {
	case Tab: base = "group_tab"
	case IDs: base = "group_ids"
	default:
		panic(fmt.Sprintf("Internal error: unrecognized catalog kind %d",
			int(kind)))
	}
	return filepath.Join(GroupDir(baseDir, snap, config...),
		fmt.Sprintf("%s_%03d.%d", base, snap, k))
}
