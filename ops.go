// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

// TrySend attempts to enqueue value on handle without suspending.
// It fails with ErrNoChannel if handle is not live, or ErrWouldBlock
// if the channel is full.
func (b *Bus) TrySend(handle int, value uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := b.resolveLocked(handle)
	if ch == nil {
		return ErrNoChannel
	}
	if ch.full() {
		return ErrWouldBlock
	}
	ch.pushBack(value)
	ch.recvWaiters.wakeOne()
	return nil
}

// TryRecv attempts to dequeue a value from handle without suspending.
// It fails with ErrNoChannel if handle is not live, or ErrWouldBlock
// if the channel is empty.
func (b *Bus) TryRecv(handle int) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := b.resolveLocked(handle)
	if ch == nil {
		return 0, ErrNoChannel
	}
	if ch.empty() {
		return 0, ErrWouldBlock
	}
	v := ch.popFront()
	ch.sendWaiters.wakeOne()
	return v, nil
}

// Send enqueues value on handle, suspending t if the channel is full
// until space frees or the channel disappears out from under it.
//
// The loop is exactly spec.md section 4.4: try the non-blocking form;
// if it would block, snapshot the channel's generation, suspend on
// send_waiters, and on resumption re-check that handle still resolves
// to the same channel instance before retrying. A coro that suspended
// here and wakes to find the generation changed reports ErrNoChannel
// rather than silently operating on whatever channel now occupies the
// same slot.
func (b *Bus) Send(t *Task, handle int, value uint32) error {
	for {
		err := b.TrySend(handle, value)
		if err == nil {
			return nil
		}
		if err != ErrWouldBlock {
			return err
		}

		b.mu.Lock()
		ch := b.resolveLocked(handle)
		if ch == nil {
			b.mu.Unlock()
			return ErrNoChannel
		}
		if !ch.full() {
			// Space freed between TrySend's unlock and here: retry
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
			return ErrNoChannel
		}
	}
}

// Recv dequeues a value from handle, suspending t if the channel is
// empty until a message arrives or the channel disappears out from
// under it. Symmetric to Send on recv_waiters.
func (b *Bus) Recv(t *Task, handle int) (uint32, error) {
	for {
		v, err := b.TryRecv(handle)
		if err == nil {
			return v, nil
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
			// A message arrived between TryRecv's unlock and here:
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
