// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package compose provides kont-based combinators for writing a coro's
// channel traffic as one straight-line protocol instead of a sequence
// of separate Bus calls threaded through by hand.
//
// Two effect operations are exposed, Send and Recv, each dispatched two
// ways depending on how the caller wants to run: Exec drives a protocol
// to completion by calling the blocking corobus.Bus.Send/Bus.Recv
// directly, parking the calling goroutine exactly as those methods
// already do. Step/Advance instead drive a protocol one effect at a
// time using the non-blocking corobus.Bus.TrySend/TryRecv, for a caller
// that already has its own cooperative scheduler and wants corobus to
// report iox.ErrWouldBlock rather than park a goroutine on its behalf —
// this is the closer analogue of spec.md's suspend_current_task/
// wake_task contract for callers that supply it themselves.
package compose

import (
	"code.hybscloud.com/corobus"
	"code.hybscloud.com/kont"
)

// Send is an effect that transfers value on handle.
type Send struct {
	kont.Phantom[struct{}]
	Handle int
	Value  uint32
}

func (op Send) dispatch(bus *corobus.Bus, t *corobus.Task) (kont.Resumed, error) {
	return struct{}{}, bus.Send(t, op.Handle, op.Value)
}

func (op Send) tryDispatch(bus *corobus.Bus) (kont.Resumed, error) {
	return struct{}{}, bus.TrySend(op.Handle, op.Value)
}

// Recv is an effect that receives a value from handle.
type Recv struct {
	kont.Phantom[uint32]
	Handle int
}

func (op Recv) dispatch(bus *corobus.Bus, t *corobus.Task) (kont.Resumed, error) {
	return bus.Recv(t, op.Handle)
}

func (op Recv) tryDispatch(bus *corobus.Bus) (kont.Resumed, error) {
	return bus.TryRecv(op.Handle)
}

// blockingOp is implemented by every effect this package defines for use
// with Exec.
type blockingOp interface {
	dispatch(bus *corobus.Bus, t *corobus.Task) (kont.Resumed, error)
}

// nonBlockingOp is implemented by every effect this package defines for
// use with Advance.
type nonBlockingOp interface {
	tryDispatch(bus *corobus.Bus) (kont.Resumed, error)
}
