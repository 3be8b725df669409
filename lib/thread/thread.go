/*package thread contains functions useful for multi-threading. fofcat only
ever parallelizes over snapshots: the segments within a catalog are always read
one after another.
*/
package thread

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Set sets the number of threads fofcat uses and returns it. -1 means every
// core.
func Set(n int) (int, error) {
	if n == -1 { n = runtime.NumCPU() }

	if n <= 0 {
		return 0, fmt.Errorf("%d threads requested, but at least one is " +
			"needed. If you want fofcat to use every core, set Threads = -1.",
			n)
	} else if n > runtime.NumCPU() {
		return 0, fmt.Errorf("%d threads requested, but your system only " +
			"has %d cores. If you want fofcat to use every core, set " +
			"Threads = -1.", n, runtime.NumCPU())
	}

	runtime.GOMAXPROCS(n)
	return n, nil
}

// ForEach calls f(i) for every i in [0, n) using at most threads goroutines
// at once. It returns the error from the lowest i that failed, so the error
// doesn't depend on scheduling. Calls that haven't started when an error
// occurs are skipped.
func ForEach(n, threads int, f func(i int) error) error {
	if threads < 1 { threads = 1 }

	errs := make([]error, n)
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(threads)

	for i := 0; i < n; i++ {
		if ctx.Err() != nil { break }
		i := i
		g.Go(func() error {
			errs[i] = f(i)
			return errs[i]
		})
	}
	g.Wait()

	for _, err := range errs {
		if err != nil { return err }
	}
	return nil
}
