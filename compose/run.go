// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package compose

import (
	"code.hybscloud.com/corobus"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run interleaves two protocols against bus on the calling goroutine,
// using only the non-blocking Try* primitives and an adaptive backoff
// (iox.Backoff) whenever neither side can make progress. It never spawns
// a goroutine or parks one on a Task, but it does not return until both
// protocols have completed, waiting on the backoff between rounds in
// which neither side advanced.
func Run[A, B any](bus *corobus.Bus, a kont.Eff[A], b kont.Eff[B]) (A, B) {
	resultA, suspA := Step[A](a)
	resultB, suspB := Step[B](b)
	var bo iox.Backoff

	for suspA != nil || suspB != nil {
		progress := false
		if suspA != nil {
			var err error
			resultA, suspA, err = Advance(bus, suspA)
			if err == nil {
				progress = true
			}
		}
		if suspB != nil {
			var err error
			resultB, suspB, err = Advance(bus, suspB)
			if err == nil {
				progress = true
			}
		}
		if progress {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
	return resultA, resultB
}
