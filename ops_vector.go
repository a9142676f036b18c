// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !nobatch

package corobus

// TrySendV appends as many of values as fit without suspending and
// returns the count actually written. A partial write is success, not
// failure: only an absent channel or a channel already at capacity
// returns an error. count == 0 returns (0, nil) immediately.
func (b *Bus) TrySendV(handle int, values []uint32) (int, error) {
	if len(values) == 0 {
		return 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ch := b.resolveLocked(handle)
	if ch == nil {
		return 0, ErrNoChannel
	}
	free := ch.free()
	if free == 0 {
		return 0, ErrWouldBlock
	}

	n := len(values)
	if uint32(n) > free {
		n = int(free)
	}
	for _, v := range values[:n] {
		ch.pushBack(v)
	}
	ch.recvWaiters.wakeN(n)
	return n, nil
}

// TryRecvV drains up to len(out) messages into out and returns the count
// actually read. A partial read is success, not failure: only an absent
// or empty channel returns an error. len(out) == 0 returns (0, nil)
// immediately.
func (b *Bus) TryRecvV(handle int, out []uint32) (int, error) {
	if len(out) == 0 {
		return 0, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	ch := b.resolveLocked(handle)
	if ch == nil {
		return 0, ErrNoChannel
	}
	if ch.empty() {
		return 0, ErrWouldBlock
	}

	n := len(out)
	if n > len(ch.buffer) {
		n = len(ch.buffer)
	}
	for i := 0; i < n; i++ {
		out[i] = ch.popFront()
	}
	ch.sendWaiters.wakeN(n)
	return n, nil
}

// SendV writes as much of values as fits, suspending t on send_waiters
// if the channel is already full when called. Like TrySendV, it returns
// as soon as it has written at least one value (or all of them); it does
// not loop back to write the remainder after waking. Callers that must
// place every value call SendV again with the unwritten tail.
func (b *Bus) SendV(t *Task, handle int, values []uint32) (int, error) {
	for {
		n, err := b.TrySendV(handle, values)
		if err == nil {
			return n, nil
		}
		if err != ErrWouldBlock {
			return 0, err
		}

		b.mu.Lock()
		ch := b.resolveLocked(handle)
		if ch == nil {
			b.mu.Unlock()
			return 0, ErrNoChannel
		}
		if ch.free() != 0 {
			// Space freed between TrySendV's unlock and here: retry
			// instead of enqueuing on send_waiters with no one left
			// to wake us.
			b.mu.Unlock()
			continue
		}
		gen := b.generationLocked(handle)
		ch.sendWaiters.suspendCurrent(t, b.mu.Unlock, b.mu.Lock)
		same := b.sameChannelLocked(handle, gen)
		b.mu.Unlock()
		if !same {
			return 0, ErrNoChannel
		}
	}
}

// RecvV reads as many messages as fit in out, suspending t on
// recv_waiters if the channel is empty when called. Symmetric to SendV.
func (b *Bus) RecvV(t *Task, handle int, out []uint32) (int, error) {
	for {
		n, err := b.TryRecvV(handle, out)
		if err == nil {
			return n, nil
		}
		if err != ErrWouldBlock {
			return 0, err
		}

		b.mu.Lock()
		ch := b.resolveLocked(handle)
		if ch == nil {
			b.mu.Unlock()
			return 0, ErrNoChannel
		}
		if !ch.empty() {
			// A message arrived between TryRecvV's unlock and here:
			// retry instead of enqueuing on recv_waiters with no
			// one left to wake us.
			b.mu.Unlock()
			continue
		}
		gen := b.generationLocked(handle)
		ch.recvWaiters.suspendCurrent(t, b.mu.Unlock, b.mu.Lock)
		same := b.sameChannelLocked(handle, gen)
		b.mu.Unlock()
		if !same {
			return 0, ErrNoChannel
		}
	}
}
