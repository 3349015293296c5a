// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"testing"
)

// ContainerSemaphore returns the process-wide channel that bounds
// concurrent container operations in tests. Most tests should go through
// AcquireContainerSlot instead of using the channel directly.
//
// Capacity comes from LINTGATE_TEST_CONTAINER_PARALLEL, defaulting to
// min(GOMAXPROCS, 2). The cap exists because an overloaded container
// engine on a small CI runner hangs indefinitely instead of failing with
// something retryable.
var ContainerSemaphore = sync.OnceValue(func() chan struct{} {
	return make(chan struct{}, containerParallelism())
})

// AcquireContainerSlot blocks until a container slot is free and releases
// it when the test finishes.
func AcquireContainerSlot(t testing.TB) {
	t.Helper()
	sem := ContainerSemaphore()
	sem <- struct{}{}
	t.Cleanup(func() { <-sem })
}

func containerParallelism() int {
	if v := os.Getenv("LINTGATE_TEST_CONTAINER_PARALLEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return min(runtime.GOMAXPROCS(0), 2)
}
