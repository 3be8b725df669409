/*package export writes FoF catalogs to Parquet files, so that they can be
read by tools which don't understand the segmented binary format. Each
snapshot becomes one file with one row per halo:

   <dir>/halos_<snap>.parquet
*/
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"

	"github.com/phil-mansfield/fofcat/lib/fofio"
	"github.com/phil-mansfield/fofcat/lib/logging"
)

// HaloRow is a single halo in an exported file.
type HaloRow struct {
	Snapshot int32 `parquet:"snapshot"`
	Index int64 `parquet:"index"`
	Len int32 `parquet:"len"`
	Offset int32 `parquet:"offset"`
	Mass float32 `parquet:"mass"`
	X float32 `parquet:"x"`
	Y float32 `parquet:"y"`
	Z float32 `parquet:"z"`
	VX float32 `parquet:"vx"`
	VY float32 `parquet:"vy"`
	VZ float32 `parquet:"vz"`
	TypeLen []float32 `parquet:"type_len"`
	TypeMass []float32 `parquet:"type_mass"`
	// SFR is null for catalogs without star formation rates.
	SFR *float32 `parquet:"sfr,optional"`
}

// FileName returns the name of the file that snapshot snap is exported to.
func FileName(dir string, snap int) string {
	return filepath.Join(dir, fmt.Sprintf("halos_%03d.parquet", snap))
}

// Rows converts a catalog into rows.
func Rows(cat *fofio.GroupCatalog, snap int) []HaloRow {
	rows := make([]HaloRow, cat.N())
	for i := range rows {
		g := cat.Group(i)
		rows[i] = HaloRow{
			Snapshot: int32(snap), Index: int64(i),
			Len: g.Len, Offset: g.Offset, Mass: g.Mass,
			X: g.Pos[0], Y: g.Pos[1], Z: g.Pos[2],
			VX: g.Vel[0], VY: g.Vel[1], VZ: g.Vel[2],
			TypeLen: append([]float32{}, g.TypeLen[:]...),
			TypeMass: append([]float32{}, g.TypeMass[:]...),
		}
		if cat.SFR != nil {
			sfr := g.SFR
			rows[i].SFR = &sfr
		}
	}
	return rows
}

// WriteSnapshot writes the halos of snapshot snap to dir, creating dir if
// needed, and returns the name of the new file.
func WriteSnapshot(
	dir string, snap int, cat *fofio.GroupCatalog,
) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("The export directory %s could not be " +
			"created: %w", dir, err)
	}

	fileName := FileName(dir, snap)
	if err := parquet.WriteFile(fileName, Rows(cat, snap)); err != nil {
		return "", fmt.Errorf("The file %s could not be written: %w",
			fileName, err)
	}

	logging.L().Info().Str("file", fileName).Int("snapshot", snap).
		Int("halos", cat.N()).Msg("exported catalog")
	return fileName, nil
}
