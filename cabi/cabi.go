// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cabi is the C-style external handle API from the original
// corobus.cpp: every entry point takes and returns plain integers, never
// a Go pointer, so this package is safe to wrap in a thin cgo export
// shim for embedding corobus in a non-Go coroutine runtime. It does not
// itself declare any //export functions — that boundary belongs to
// whatever program links against a specific C ABI — but every function
// here is already shaped for it: int32 handles in, int32 status codes
// or counts out, and a single process-wide errno reachable without a
// receiver.
//
// Buses and tasks are held in package-level registries and referenced
// by small integer handles, mirroring how corobus.Bus itself references
// channels: an opaque handle, not a pointer, crosses the boundary.
package cabi

import (
	"sync"

	"code.hybscloud.com/corobus"
)

const (
	// StatusOK is the success return value for entry points that report
	// only success/failure, matching spec.md section 6's "0 or -1".
	StatusOK = 0
	// StatusErr is the failure return value for entry points that report
	// only success/failure. The specific cause is available from Errno.
	StatusErr = -1
)

var registry struct {
	mu    sync.Mutex
	buses []*corobus.Bus
	tasks []*corobus.Task
}

// BusNew creates a bus and returns its handle.
func BusNew() int32 {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.buses = append(registry.buses, corobus.NewBus())
	return int32(len(registry.buses) - 1)
}

// BusDelete asserts bus has no live waiters and frees the handle table,
// matching coro_bus_delete's assertion in the original.
func BusDelete(bus int32) {
	b := resolveBus(bus)
	if b == nil {
		return
	}
	b.Delete()
}

// TaskNew creates a task handle for one coro and returns its handle. The
// C-style surface has no ambient current_task(), so every blocking call
// below takes a task handle explicitly, the same inversion corobus.Task
// makes at the Go API layer.
func TaskNew() int32 {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.tasks = append(registry.tasks, corobus.NewTask())
	return int32(len(registry.tasks) - 1)
}

func resolveBus(handle int32) *corobus.Bus {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if handle < 0 || int(handle) >= len(registry.buses) {
		return nil
	}
	return registry.buses[handle]
}

func resolveTask(handle int32) *corobus.Task {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if handle < 0 || int(handle) >= len(registry.tasks) {
		return nil
	}
	return registry.tasks[handle]
}

// ChannelOpen allocates a channel of the given capacity on bus and
// returns its handle, or -1 if bus does not resolve.
func ChannelOpen(bus int32, capacity uint32) int32 {
	b := resolveBus(bus)
	if b == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	h := b.Open(capacity)
	corobus.SetErrno(corobus.CodeNone)
	return int32(h)
}

// ChannelClose closes handle on bus. A no-op on an already-dead or
// out-of-range handle, matching close(handle)'s idempotence in spec.md
// section 4.3.
func ChannelClose(bus int32, handle int32) {
	b := resolveBus(bus)
	if b == nil {
		return
	}
	b.Close(int(handle))
}

func setErrno(err error) int32 {
	code := corobus.CodeOf(err)
	corobus.SetErrno(code)
	if code == corobus.CodeNone {
		return StatusOK
	}
	return StatusErr
}

// TrySend is the non-blocking send entry point.
func TrySend(bus int32, handle int32, value uint32) int32 {
	b := resolveBus(bus)
	if b == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	return setErrno(b.TrySend(int(handle), value))
}

// Send is the blocking send entry point, parking task until room frees
// or the channel disappears.
func Send(bus int32, task int32, handle int32, value uint32) int32 {
	b := resolveBus(bus)
	t := resolveTask(task)
	if b == nil || t == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	return setErrno(b.Send(t, int(handle), value))
}

// TryRecv is the non-blocking receive entry point. On success *out holds
// the received value.
func TryRecv(bus int32, handle int32, out *uint32) int32 {
	b := resolveBus(bus)
	if b == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	v, err := b.TryRecv(int(handle))
	if err != nil {
		return setErrno(err)
	}
	*out = v
	return setErrno(nil)
}

// Recv is the blocking receive entry point, parking task until a message
// arrives or the channel disappears.
func Recv(bus int32, task int32, handle int32, out *uint32) int32 {
	b := resolveBus(bus)
	t := resolveTask(task)
	if b == nil || t == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	v, err := b.Recv(t, int(handle))
	if err != nil {
		return setErrno(err)
	}
	*out = v
	return setErrno(nil)
}

// Errno returns the process-wide last-error code.
func Errno() int32 {
	return int32(corobus.Errno())
}

// ErrnoSet sets the process-wide last-error code directly.
func ErrnoSet(code int32) {
	corobus.SetErrno(corobus.Code(code))
}
