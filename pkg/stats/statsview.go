//go:build statsview

package stats

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// ViewAddress is where the runtime view is served.
const ViewAddress = "localhost:12600"

// LaunchRuntimeView serves live charts of the Go runtime in a new
// goroutine and writes its URL to output.
func LaunchRuntimeView(output io.Writer) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(ViewAddress))
		mgr := statsview.New()
		mgr.Start()
	}()

	fmt.Fprintf(output, "runtime stats available at http://%s/debug/statsview\n", ViewAddress)
}

// RuntimeViewAvailable reports whether LaunchRuntimeView does anything.
func RuntimeViewAvailable() bool {
	return true
}
