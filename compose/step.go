// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package compose

import (
	"code.hybscloud.com/corobus"
	"code.hybscloud.com/kont"
)

// Step evaluates a protocol until its first effect suspension. Returns
// (result, nil) on completion, or (zero, suspension) if pending.
func Step[R any](protocol kont.Eff[R]) (R, *kont.Suspension[R]) {
	return kont.Step(protocol)
}

// Advance dispatches the suspended protocol operation against bus using
// only the non-blocking Try* primitives. It never parks a goroutine: on
// ErrWouldBlock the suspension is left unconsumed so an external
// scheduler can retry it once other work has run, playing the role
// spec.md's cooperative scheduler plays for a coro that would otherwise
// block on a full or empty channel.
//
// On success the suspension is consumed and the protocol advances to its
// next effect or to completion.
func Advance[R any](bus *corobus.Bus, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	op, ok := susp.Op().(nonBlockingOp)
	if !ok {
		panic("compose: unhandled effect in Advance")
	}
	v, err := op.tryDispatch(bus)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}
