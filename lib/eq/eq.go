/*package eq is a simple package for telling whether two arrays are equal to
one another. It's mostly used by tests.*/
package eq

// Slices returns true if two arrays have the same length and the same values
// and false otherwise. Any comparable element type works, including
// fixed-size arrays like [3]float32.
func Slices[T comparable](x, y []T) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] + eps < y[i] || x[i] - eps > y[i] {
			return false
		}
	}
	return true
}
