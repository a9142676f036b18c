// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

// waitEntry is one coro parked in a WaitQueue. live tracks whether the
// entry is still linked into the queue's slice; suspendCurrent uses it
// to decide whether it needs to unlink itself defensively after waking
// (spec.md section 4.1 — a task can, in a larger system, be woken for a
// reason unrelated to the wait queue it is sitting in).
type waitEntry struct {
	task *Task
	live bool
}

// WaitQueue is an ordered list of suspended-coro tokens: a channel's
// send_waiters or recv_waiters. All methods assume the caller already
// holds the owning Bus's mutex — the mutex plays the role of spec.md's
// single OS thread, so mutation of a WaitQueue is always atomic with
// respect to every other coro.
type WaitQueue struct {
	entries []*waitEntry
}

// suspendCurrent appends a token for t to the tail of q, releases the
// bus lock for the duration of the park, and reacquires it once t is
// woken. On resumption, if the token is still linked (this was a
// spurious wake, not a wakeOne/wakeN/drain pop), it unlinks itself.
func (q *WaitQueue) suspendCurrent(t *Task, unlock, relock func()) {
	entry := &waitEntry{task: t, live: true}
	q.entries = append(q.entries, entry)
	unlock()
	t.suspend()
	relock()
	if entry.live {
		q.unlink(entry)
	}
}

func (q *WaitQueue) unlink(target *waitEntry) {
	for i, e := range q.entries {
		if e == target {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// wakeOne wakes the longest-waiting coro in q, if any. The woken coro
// remains merely runnable; it does not observe channel state until it
// actually resumes and re-checks its own predicate.
func (q *WaitQueue) wakeOne() {
	q.wakeN(1)
}

// wakeN wakes up to n of the longest-waiting coros in q, in FIFO order,
// stopping early if q empties first.
func (q *WaitQueue) wakeN(n int) {
	for i := 0; i < n && len(q.entries) > 0; i++ {
		entry := q.entries[0]
		q.entries = q.entries[1:]
		entry.live = false
		entry.task.Wake()
	}
}

// drain wakes every coro currently parked in q.
func (q *WaitQueue) drain() {
	q.wakeN(len(q.entries))
}

// len reports how many coros are currently parked in q.
func (q *WaitQueue) len() int {
	return len(q.entries)
}
