package fofio

import (
	"fmt"
)

// Catalog is a full FoF catalog for one snapshot: the tab catalog and,
// optionally, the ids catalog.
type Catalog struct {
	*GroupCatalog
	// IDs is nil if Config.ReadIDs wasn't set.
	IDs *IDCatalog
}

// ReadCatalog reads the tab catalog of snapshot snap and, if
// Config.ReadIDs is set, the ids catalog too.
func ReadCatalog(baseDir string, snap int, config ...Config) (*Catalog, error) {
	c, err := getConfig(config)
	if err != nil { return nil, err }

	tab, err := ReadGroupTab(baseDir, snap, c)
	if err != nil { return nil, err }
	cat := &Catalog{ GroupCatalog: tab }

	if c.ReadIDs {
		cat.IDs, err = ReadGroupIDs(baseDir, snap, c)
		if err != nil { return nil, err }
	}

	return cat, nil
}

// Members returns the IDs of the particles in halo i. The catalog must have
// been read with Config.ReadIDs. Nothing checks that Offset and Len agree
// with the ids files while reading, so a halo which points outside the IDs
// array returns an error here.
func (cat *Catalog) Members(i int) ([]uint64, error) {
	if cat.IDs == nil {
		return nil, fmt.Errorf("The catalog was read without its ids " +
			"files, so halo members aren't available.")
	} else if i < 0 || i >= cat.N() {
		return nil, fmt.Errorf("Halo %d was requested, but the catalog " +
			"only has %d halos.", i, cat.N())
	}

	start, n := int(cat.Offset[i]), int(cat.Len[i])
	if start < 0 || n < 0 || start + n > cat.IDs.Len() {
		return nil, fmt.Errorf("Halo %d has Offset = %d and Len = %d, but " +
			"the ids catalog only has %d IDs.", i, start, n, cat.IDs.Len())
	}

	return cat.IDs.Slice(start, start + n), nil
}
