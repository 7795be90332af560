package testing

import (
	"os"
	"path"
	"runtime"
)

// Blank-import this package from any _test.go file to run tests from the
// project root:
//
//	import (
//	  _ "github.com/chetansierra/temperature-dashboard-sub001/pkg/testing"
//	)
//
// Tests touch paths relative to the root (.env, logs/), so the working
// directory has to be pinned before any of that code runs.
func init() {
	_, filename, _, _ := runtime.Caller(0)
	root := path.Join(path.Dir(filename), "..", "..")
	if err := os.Chdir(root); err != nil {
		panic(err)
	}

	// keep test log output out of the working tree
	os.Setenv("TEMPDASH_LOG_DIR", path.Join(os.TempDir(), "tempdash-test-logs"))
}
