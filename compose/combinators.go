// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package compose

import (
	"errors"

	"code.hybscloud.com/corobus"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// SendThen sends value on handle and then continues with next.
// Fuses Perform(Send{...}) + Then.
func SendThen[B any](handle int, value uint32, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(Send{Handle: handle, Value: value}), next)
}

// RecvBind receives a value from handle and passes it to f.
// Fuses Perform(Recv{...}) + Bind.
func RecvBind[B any](handle int, f func(uint32) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv{Handle: handle}), f)
}

// Close closes handle and returns a. Close never suspends, so unlike
// SendThen/RecvBind this needs no effect operation — it runs eagerly and
// wraps the result in Pure directly.
func Close[A any](bus *corobus.Bus, handle int, a A) kont.Eff[A] {
	bus.Close(handle)
	return kont.Pure(a)
}

// SelectReady blocks until handleA or handleB has a value ready and
// calls onA or onB with it, whichever wins. A Task may only sit in one
// WaitQueue at a time, so SelectReady cannot suspend on either handle
// directly without risking the loser never being unlinked; instead it
// polls both handles' non-blocking form under an adaptive backoff
// (iox.Backoff) until one succeeds.
//
// A handle closing mid-poll is a normal runtime condition, not a
// programmer error: that side simply stops being polled, and only once
// both handles are dead does SelectReady give up and report
// ErrNoChannel through the returned Either, the same way Exec reports a
// dispatch failure instead of panicking.
func SelectReady[A any](bus *corobus.Bus, handleA, handleB int, onA, onB func(uint32) kont.Eff[A]) kont.Eff[kont.Either[error, A]] {
	var bo iox.Backoff
	aDead, bDead := false, false
	for {
		if !aDead {
			v, err := bus.TryRecv(handleA)
			switch {
			case err == nil:
				return kont.Map[kont.Resumed, A, kont.Either[error, A]](onA(v), func(a A) kont.Either[error, A] {
					return kont.Right[error, A](a)
				})
			case errors.Is(err, corobus.ErrNoChannel):
				aDead = true
			case !errors.Is(err, corobus.ErrWouldBlock):
				return kont.Pure(kont.Left[error, A](err))
			}
		}
		if !bDead {
			v, err := bus.TryRecv(handleB)
			switch {
			case err == nil:
				return kont.Map[kont.Resumed, A, kont.Either[error, A]](onB(v), func(a A) kont.Either[error, A] {
					return kont.Right[error, A](a)
				})
			case errors.Is(err, corobus.ErrNoChannel):
				bDead = true
			case !errors.Is(err, corobus.ErrWouldBlock):
				return kont.Pure(kont.Left[error, A](err))
			}
		}
		if aDead && bDead {
			return kont.Pure(kont.Left[error, A](corobus.ErrNoChannel))
		}
		bo.Wait()
	}
}

// Loop runs a recursive protocol. step returns Left(nextState) to
// continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return kont.Pure(right)
	})
}
