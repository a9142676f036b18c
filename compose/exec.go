// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package compose

import (
	"code.hybscloud.com/corobus"
	"code.hybscloud.com/kont"
)

// execHandler implements kont.Handler by routing every effect in this
// package to its blocking form against bus, on behalf of task. A
// dispatch failure — a channel closed out from under a suspended
// coro — short-circuits the handler with ok=false rather than
// panicking, the same way the teacher's sessionErrorHandler turns a
// Throw into kont.Left instead of unwinding the stack: a closed handle
// is a normal runtime condition here, not a programmer error.
type execHandler[R any] struct {
	bus  *corobus.Bus
	task *corobus.Task
}

// Dispatch implements kont.Handler via structural interface assertion,
// matching the F-bounded contract kont.Handle requires.
func (h execHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	bop, ok := op.(blockingOp)
	if !ok {
		panic("compose: unhandled effect")
	}
	v, err := bop.dispatch(h.bus, h.task)
	if err != nil {
		return kont.Left[error, R](err), false
	}
	return v, true
}

// Exec runs a protocol to completion, blocking task on bus for every Send
// or Recv effect it performs, and reports the first dispatch error (a
// closed channel) as a plain Go error rather than panicking. It does not
// spawn a goroutine: the calling goroutine parks directly on the Bus's
// wait queues via task, so callers typically run Exec itself inside the
// goroutine that owns task.
func Exec[R any](bus *corobus.Bus, task *corobus.Task, protocol kont.Eff[R]) (R, error) {
	wrapped := kont.Map[kont.Resumed, R, kont.Either[error, R]](protocol, func(r R) kont.Either[error, R] {
		return kont.Right[error, R](r)
	})
	either := kont.Handle(wrapped, execHandler[R]{bus: bus, task: task})
	if err, ok := either.GetLeft(); ok {
		var zero R
		return zero, err
	}
	result, _ := either.GetRight()
	return result, nil
}
