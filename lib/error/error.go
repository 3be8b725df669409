/*package error contains simple funcitons for reporting fatal fofcat errors
from the command line tool. Library code returns errors instead.
*/
package error

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/phil-mansfield/fofcat/lib/logging"
)

// exit is swapped out by tests.
var exit = os.Exit

// External reports an error and kills the program. It should be used when an
// error is something a user could reasonbly be expected to fix through
// changes in configuration/data/environement, like a missing segment file. It
// has the same signature as the standard fmt.*printf() functions.
func External(format string, a ...interface{}) {
	logging.L().Error().Msg("fofcat exited early with the following error: " +
		fmt.Sprintf(format, a...))
	exit(1)
}

// Internal reports an error along with a stack trace and kills the program.
// It should be used when the error requires a code dive to fix.
func Internal(format string, a ...interface{}) {
	logging.L().Error().
		Str("stack", string(debug.Stack())).
		Msg("fofcat exited early with an internal error: " +
			fmt.Sprintf(format, a...))
	exit(1)
}
