/*package summary computes statistics of assembled FoF catalogs. These are
what fofcat's summary mode prints, and are mostly useful for a quick sanity
check that a catalog was read with the right settings: a wrong SFR or ID width
setting fails loudly, but some mistakes (like reading the wrong snapshot)
only show up as odd-looking numbers.
*/
package summary

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/fofcat/lib/fofio"
)

// Summary contains statistics of a single catalog. Masses are in whatever
// units the catalog was written in.
type Summary struct {
	Halos int
	Particles int64 // Sum of Len over all halos.
	IDs int // Number of IDs in the ids files, or -1 if they weren't read.

	TotalMass, MeanMass, StdMass, MaxMass float64
	MedianLen float64

	// MeanVel and VelDispersion are the mean and standard deviation of the
	// halo velocities along each axis.
	MeanVel, VelDispersion [3]float64

	// TotalSFR is the summed star formation rate, or NaN if the catalog has
	// no SFR block.
	TotalSFR float64

	// Digest is a hash of every column of the catalog, in a fixed byte
	// order. Two copies of the same catalog have the same digest no matter
	// how their files are stored.
	Digest uint64
}

// Summarize computes the statistics of cat.
func Summarize(cat *fofio.Catalog) *Summary {
	n := cat.N()
	s := &Summary{ Halos: n, IDs: -1, TotalSFR: math.NaN() }
	if cat.IDs != nil { s.IDs = cat.IDs.Len() }
	s.Digest = Digest(cat)

	for _, l := range cat.Len { s.Particles += int64(l) }
	if cat.SFR != nil { s.TotalSFR = floats.Sum(float32sTo64(cat.SFR)) }
	if n == 0 { return s }

	mass := float32sTo64(cat.Mass)
	s.TotalMass, s.MaxMass = floats.Sum(mass), floats.Max(mass)
	if n == 1 {
		s.MeanMass = mass[0]
	} else {
		s.MeanMass, s.StdMass = stat.MeanStdDev(mass, nil)
	}

	lens := make([]float64, n)
	for i := range lens { lens[i] = float64(cat.Len[i]) }
	sort.Float64s(lens)
	s.MedianLen = stat.Quantile(0.5, stat.Empirical, lens, nil)

	vel := mat.NewDense(n, 3, nil)
	for i := range cat.Vel {
		for k := 0; k < 3; k++ { vel.Set(i, k, float64(cat.Vel[i][k])) }
	}
	for k := 0; k < 3; k++ {
		s.MeanVel[k] = stat.Mean(mat.Col(nil, k, vel), nil)
	}
	if n > 1 {
		cov := mat.NewSymDense(3, nil)
		stat.CovarianceMatrix(cov, vel, nil)
		for k := 0; k < 3; k++ { s.VelDispersion[k] = math.Sqrt(cov.At(k, k)) }
	}

	return s
}

// Digest returns an xxhash digest of every column of cat, including the IDs
// if they were read. Columns are hashed little-endian, so catalogs read with
// and without byte swapping have the same digest.
func Digest(cat *fofio.Catalog) uint64 {
	d := xxhash.New()
	cols := []interface{}{
		cat.Len, cat.Offset, cat.Mass, cat.Pos, cat.Vel,
		cat.TypeLen, cat.TypeMass,
	}
	if cat.SFR != nil { cols = append(cols, cat.SFR) }
	if cat.IDs != nil {
		// 32-bit IDs are hashed as 32 bits, so changing the width
		// changes the digest.
		if cat.IDs.Width == fofio.IDWidth64 {
			cols = append(cols, cat.IDs.ID64)
		} else {
			cols = append(cols, cat.IDs.ID32)
		}
	}

	for _, col := range cols {
		if err := binary.Write(d, binary.LittleEndian, col); err != nil {
			panic(fmt.Sprintf("Internal error: column of type %T can't be " +
				"hashed: %s", col, err.Error()))
		}
	}
	return d.Sum64()
}

// Fprint writes a human-readable version of s for snapshot snap to wr.
func (s *Summary) Fprint(wr io.Writer, snap int) error {
	ids := "not read"
	if s.IDs >= 0 { ids = fmt.Sprintf("%d", s.IDs) }
	sfr := "none"
	if !math.IsNaN(s.TotalSFR) { sfr = fmt.Sprintf("%.5g", s.TotalSFR) }

	_, err := fmt.Fprintf(wr, `Snapshot %03d
  Halos:          %d
  Particles:      %d
  IDs:            %s
  Total mass:     %.5g
  Mass:           mean = %.5g, std = %.5g, max = %.5g
  Median Len:     %g
  Mean velocity:  (%.4g, %.4g, %.4g)
  Vel dispersion: (%.4g, %.4g, %.4g)
  Total SFR:      %s
  Digest:         %016x
`,
		snap, s.Halos, s.Particles, ids, s.TotalMass,
		s.MeanMass, s.StdMass, s.MaxMass, s.MedianLen,
		s.MeanVel[0], s.MeanVel[1], s.MeanVel[2],
		s.VelDispersion[0], s.VelDispersion[1], s.VelDispersion[2],
		sfr, s.Digest)
	return err
}

func float32sTo64(x []float32) []float64 {
	out := make([]float64, len(x))
	for i := range x { out[i] = float64(x[i]) }
	return out
}
