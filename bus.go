// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import (
	"fmt"
	"sync"
)

// Bus is a sparse table of [Channel]s indexed by small non-negative
// integers, each slot carrying a generation counter so that a handle
// value can never be confused with a different channel instance that
// happens to reuse the same index (spec.md section 3, "bus handle
// table").
//
// mu serializes every mutation of bus state, playing the role of
// spec.md's single OS thread: while mu is held, exactly one goroutine
// is inspecting or mutating the bus, so "atomic between suspension
// points" holds by construction rather than by convention. generations
// is a plain []uint64, not []atomix.Uint64: every read and write already
// happens under mu, so the lock-free counter type code.hybscloud.com/atomix
// provides elsewhere (serial.go's process-wide debug counter) would add
// nothing here and would make the slice non-copyable under append.
type Bus struct {
	mu sync.Mutex

	slots       []*Channel
	generations []uint64

	serial Serial
}

// NewBus constructs an empty bus with no channels.
func NewBus() *Bus {
	return &Bus{serial: nextBusSerial()}
}

// Serial returns this bus's debug identifier, assigned once at
// construction. It has no bearing on channel resolution.
func (b *Bus) Serial() Serial {
	return b.serial
}

// Open allocates a channel with the given capacity, placing it in the
// lowest-indexed tombstone slot if one exists, else appending a new
// slot. A freshly appended slot starts at generation 1; a reused slot
// keeps whatever generation Close last bumped it to.
func (b *Bus) Open(capacity uint32) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, ch := range b.slots {
		if ch == nil {
			b.slots[i] = newChannel(capacity)
			return i
		}
	}

	b.slots = append(b.slots, newChannel(capacity))
	b.generations = append(b.generations, 1)
	return len(b.slots) - 1
}

// Close replaces the live channel at handle with a tombstone, bumps
// its generation, and drains both wait queues, waking every waiter so
// each observes the generation mismatch and reports ErrNoChannel on
// its own next check. Buffered messages are discarded. Close on an
// already-tombstoned or out-of-range handle is a silent no-op.
func (b *Bus) Close(handle int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := b.resolveLocked(handle)
	if ch == nil {
		return
	}
	b.slots[handle] = nil
	b.generations[handle]++
	ch.sendWaiters.drain()
	ch.recvWaiters.drain()
}

// Delete asserts that no live channel has waiters, then frees the
// handle table. It panics — spec.md section 7 calls this "a
// programming error... detected by assertion" — if any channel still
// has a coro parked on it.
func (b *Bus) Delete() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, ch := range b.slots {
		if ch == nil {
			continue
		}
		if ch.sendWaiters.len() != 0 || ch.recvWaiters.len() != 0 {
			panic(fmt.Sprintf("corobus: Delete called with live waiters on channel %d", i))
		}
	}
	b.slots = nil
	b.generations = nil
}

// Generation reads handle's current generation regardless of liveness,
// exposing spec.md section 4.3's snapshot_generation as public API for
// callers building their own weak references on top of a handle.
func (b *Bus) Generation(handle int) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.generationLocked(handle)
}

// LiveChannels reports how many channels currently resolve to a live
// (non-tombstoned) instance.
func (b *Bus) LiveChannels() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, ch := range b.slots {
		if ch != nil {
			n++
		}
	}
	return n
}

// resolveLocked returns the live channel at handle, or nil if handle
// is out of range or tombstoned. Callers must hold b.mu.
func (b *Bus) resolveLocked(handle int) *Channel {
	if handle < 0 || handle >= len(b.slots) {
		return nil
	}
	return b.slots[handle]
}

// generationLocked reads handle's current generation regardless of
// liveness. Callers must hold b.mu.
func (b *Bus) generationLocked(handle int) uint64 {
	if handle < 0 || handle >= len(b.generations) {
		return 0
	}
	return b.generations[handle]
}

// sameChannelLocked reports whether handle still resolves to a live
// channel at generation gen. Callers must hold b.mu. This is the
// (index, generation) weak-reference check spec.md section 4.4 calls
// essential: while a coro is suspended, the channel it was waiting on
// may have closed and its slot reused by a new Open, and without this
// check the coro would silently attach to the unrelated replacement.
func (b *Bus) sameChannelLocked(handle int, gen uint64) bool {
	if b.resolveLocked(handle) == nil {
		return false
	}
	return b.generationLocked(handle) == gen
}
