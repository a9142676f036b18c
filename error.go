// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrNoChannel reports that a handle did not resolve to a live channel:
// out of range, tombstoned, or the slot's generation advanced while the
// caller was suspended. It is never retryable for that handle.
var ErrNoChannel = errors.New("corobus: no such channel")

// ErrWouldBlock reports that a non-blocking operation could not make
// progress right now. It is exactly [code.hybscloud.com/iox.ErrWouldBlock]:
// corobus does not mint its own backpressure sentinel, since iox's is
// already the "channel can't make progress" signal the whole
// code.hybscloud.com line (lfq included) uses. Retryable.
var ErrWouldBlock = iox.ErrWouldBlock

// Code is the process-wide error taxonomy from spec.md section 6/7,
// preserved for the C-style external handle API in corobus/cabi.
// Idiomatic Go callers should prefer the sentinel errors above; Code
// exists for parity with the original corobus.cpp ABI, not as the
// primary error-reporting mechanism.
type Code int

const (
	// CodeNone means the last operation succeeded.
	CodeNone Code = iota
	// CodeNoChannel means the last operation failed with ErrNoChannel.
	CodeNoChannel
	// CodeWouldBlock means the last operation failed with ErrWouldBlock.
	CodeWouldBlock
)

// String implements fmt.Stringer for readable test failures and logs.
func (c Code) String() string {
	switch c {
	case CodeNone:
		return "NONE"
	case CodeNoChannel:
		return "NO_CHANNEL"
	case CodeWouldBlock:
		return "WOULD_BLOCK"
	default:
		return "UNKNOWN"
	}
}

// CodeOf classifies err into the three-value taxonomy using errors.Is,
// so a wrapped ErrNoChannel or ErrWouldBlock still classifies correctly.
// A nil err maps to CodeNone; anything that is not ErrNoChannel or
// ErrWouldBlock is programmer error and panics rather than silently
// reporting NONE. Exported for corobus/cabi's setErrno, which needs the
// same classification to fill the process-wide errno slot.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeNone
	case errors.Is(err, ErrNoChannel):
		return CodeNoChannel
	case errors.Is(err, ErrWouldBlock):
		return CodeWouldBlock
	default:
		panic("corobus: unexpected error outside {NoChannel, WouldBlock}: " + err.Error())
	}
}

// lastErrno is the process-wide last-error slot from spec.md section 5.
// Acceptable as a single global because the runtime it stands in for
// is single-threaded; corobus's own Bus operations do not touch it —
// only the corobus/cabi handle API does, since it exists solely to
// give that C-style surface parity with the original ABI's errno().
var lastErrno Code

// Errno returns the last error code set by a corobus/cabi operation.
func Errno() Code {
	return lastErrno
}

// SetErrno sets the process-wide last-error slot directly. Exposed for
// callers embedding corobus behind their own C-style boundary who need
// to reset it between calls, mirroring coro_bus_errno_set.
func SetErrno(c Code) {
	lastErrno = c
}
