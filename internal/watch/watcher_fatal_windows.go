// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"syscall"
)

// Win32 system error codes. fsnotify on Windows uses ReadDirectoryChangesW,
// which has no inotify-style watch limit, but handle exhaustion and
// invalidated directory handles still leave the watcher broken.
const (
	// ERROR_TOO_MANY_OPEN_FILES (4): per-process handle limit exceeded.
	errnoTooManyOpenFiles = syscall.Errno(4)
	// ERROR_INVALID_HANDLE (6): the watched directory was deleted or
	// unmounted, invalidating its handle.
	errnoInvalidHandle = syscall.Errno(6)
	// ERROR_NOT_ENOUGH_MEMORY (8): cannot allocate the
	// ReadDirectoryChangesW notification buffer.
	errnoNotEnoughMemory = syscall.Errno(8)
)

// fatalWatchErrnos are the error codes that leave the watcher unable to
// make progress on Windows.
var fatalWatchErrnos = []error{errnoTooManyOpenFiles, errnoInvalidHandle, errnoNotEnoughMemory}

// isFatalFsnotifyError classifies fsnotify errors that indicate the watcher
// is fundamentally broken and cannot recover. Everything else (transient
// permission errors, races with deleted files) is logged and survived.
func isFatalFsnotifyError(err error) bool {
	for _, errno := range fatalWatchErrnos {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}
