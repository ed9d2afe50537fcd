// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import (
	"errors"
	"syscall"
)

const (
	// ERROR_TOO_MANY_OPEN_FILES (4): per-process handle limit exceeded.
	errnoTooManyOpenFiles = syscall.Errno(4)
	// ERROR_INVALID_HANDLE (6): watched directory deleted or unmounted.
	errnoInvalidHandle = syscall.Errno(6)
	// ERROR_NOT_ENOUGH_MEMORY (8): cannot allocate the notification buffer.
	errnoNotEnoughMemory = syscall.Errno(8)
)

// isFatalFsnotifyError classifies fsnotify errors the watcher cannot
// recover from on Windows, where ReadDirectoryChangesW has no inotify
// style watch limits but handle and memory exhaustion still break it.
func isFatalFsnotifyError(err error) bool {
	return errors.Is(err, errnoTooManyOpenFiles) ||
		errors.Is(err, errnoInvalidHandle) ||
		errors.Is(err, errnoNotEnoughMemory)
}
