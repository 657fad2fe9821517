// Package perf times tab switches. Set TABSWITCH_PERF=1 to append every
// measurement to perf.log in the state directory.
package perf

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/b/tabswitch/pkg/paths"
)

var (
	mu       sync.Mutex
	sink     io.Writer
	initOnce sync.Once
)

func lazyInit() {
	initOnce.Do(func() {
		if os.Getenv("TABSWITCH_PERF") != "1" {
			return
		}
		if _, err := paths.EnsureStateDir(); err != nil {
			return
		}
		f, err := os.OpenFile(paths.StatePath("perf.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return
		}
		sink = f
	})
}

// SetOutput redirects measurements to w; nil disables them.
func SetOutput(w io.Writer) {
	initOnce.Do(func() {})
	mu.Lock()
	sink = w
	mu.Unlock()
}

// Timer tracks elapsed time for a named operation
type Timer struct {
	name  string
	start time.Time
}

// Start begins timing an operation
func Start(name string) *Timer {
	return &Timer{name: name, start: time.Now()}
}

// Stop ends timing, records the result if enabled and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	lazyInit()
	mu.Lock()
	if sink != nil {
		fmt.Fprintf(sink, "%s: %s: %v\n", time.Now().Format("15:04:05.000"), t.name, elapsed)
	}
	mu.Unlock()
	return elapsed
}

// Enabled reports whether measurements are being recorded
func Enabled() bool {
	lazyInit()
	mu.Lock()
	defer mu.Unlock()
	return sink != nil
}
