/*package fofio reads the friends-of-friends group catalogs written by
Gadget-style structure finders. A catalog for one snapshot is split over
several segment files:

   <BaseDir>/groups_<snap>/group_tab_<snap>.<k>
   <BaseDir>/groups_<snap>/group_ids_<snap>.<k>

where <snap> is the snapshot zero-padded to three digits and k runs from 0 to
the segment count declared in segment 0. The "tab" files hold one record per
halo and the "ids" files hold the particle IDs of every halo, laid end to end.
ReadGroupTab and ReadGroupIDs assemble the segments into single arrays.

Files are read in the byte order of the machine doing the reading. If the
catalog was written on a machine with the opposite byte order, set Config.Swap.
*/
package fofio

import (
	"fmt"
)

// Kind is the kind of segment file being read.
type Kind int
const (
	Tab Kind = iota
	IDs
)

func (k Kind) String() string {
	switch k {
	case Tab: return "tab"
	case IDs: return "ids"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IDWidth is the number of bits used to store a particle ID. It can't be
// worked out from the files themselves, so the user has to supply it.
type IDWidth int
const (
	IDWidth32 IDWidth = 32
	IDWidth64 IDWidth = 64
)

// Config contains the information needed to interpret a catalog. Zero-valued
// IDWidth and DirPrefix fields are filled in from DefaultConfig, but bools are
// taken as given.
type Config struct {
	SFR bool // Tab files end with a star formation rate block.
	IDWidth IDWidth // Width of the IDs in the ids files. 0 means IDWidth32.
	Swap bool // Files have the opposite byte order of this machine.
	// ReadIDs makes ReadCatalog read the ids files too. DefaultConfig sets
	// it, but an explicit Config must set it itself: Config{ SFR: true }
	// reads only the tab files.
	ReadIDs bool
	DirPrefix string // Prefix of the group directory. "" means "groups_".
}

// DefaultConfig is the Config used when none is given: 32-bit IDs, no star
// formation rates, native byte order.
var DefaultConfig = Config{
	SFR: false,
	IDWidth: IDWidth32,
	Swap: false,
	ReadIDs: true,
	DirPrefix: "groups_",
}

// getConfig returns the first config in the list, or DefaultConfig if there
// isn't one, with zero-valued IDWidth and DirPrefix filled in. ReadIDs is
// never filled in.
func getConfig(config []Config) (Config, error) {
	c := DefaultConfig
	if len(config) > 0 { c = config[0] }

	if c.IDWidth == 0 { c.IDWidth = IDWidth32 }
	if c.DirPrefix == "" { c.DirPrefix = DefaultConfig.DirPrefix }

	if c.IDWidth != IDWidth32 && c.IDWidth != IDWidth64 {
		return c, fmt.Errorf("The ID width was set to %d bits, but only " +
			"32 and 64 bits are supported.", int(c.IDWidth))
	}
	return c, nil
}
