// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

// Task is a coro's own handle for suspending itself and being woken.
//
// spec.md's cooperative scheduler is an external collaborator referenced
// only by contract: current_task(), suspend_current_task(), wake_task(h).
// There is no ambient scheduler to reference in a standalone Go module,
// and no goroutine-local storage to fake current_task() with, so the
// contract is inverted: a coro already holds the Task it was given when
// it was spawned, and calls the blocking Bus methods with it directly
// instead of the bus asking a global registry "who is running now."
// Waking a task only marks it runnable, exactly as spec.md section 4.1
// describes for wake_task — it does not transfer the resource (a slot
// in the buffer, a free byte of capacity). The woken goroutine must
// re-check the channel condition itself once it resumes.
type Task struct {
	wake chan struct{}
}

// NewTask creates a Task handle for one coro. A Task must not be shared
// between more than one goroutine calling blocking Bus operations
// concurrently — exactly like the single-threaded coro this stands in
// for, a Task represents one coro's point of execution.
func NewTask() *Task {
	return &Task{wake: make(chan struct{}, 1)}
}

// suspend blocks the calling goroutine until Wake is called at least
// once since the last suspend returned. It is the local stand-in for
// suspend_current_task().
func (t *Task) suspend() {
	<-t.wake
}

// Wake marks t runnable. It is the local stand-in for wake_task(t).
// Safe to call from any goroutine, any number of times; multiple wakes
// before t next suspends coalesce into a single pending wakeup, which
// matches wake_task's "mark runnable" semantics — a task cannot be
// "more runnable" by being woken twice.
func (t *Task) Wake() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}
