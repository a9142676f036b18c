// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus_test

import (
	"testing"
	"time"

	"code.hybscloud.com/corobus"
)

func TestTaskRecvOnReadyChannelDoesNotSuspend(t *testing.T) {
	bus := corobus.NewBus()
	h := bus.Open(1)
	task := corobus.NewTask()

	// A value is already there, so Recv must not need a real wake.
	if err := bus.TrySend(h, 1); err != nil {
		t.Fatalf("TrySend: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := bus.Recv(task, h); err != nil {
			t.Errorf("Recv: %v", err)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Recv on a ready channel should not have suspended")
	}
}

// TestTaskPreWokenTaskStillWaitsForRealMessage proves a stray Wake before
// a task ever suspends does not let Recv return early: the spurious
// resumption re-checks the empty channel, finds nothing, and re-suspends
// exactly as spec.md section 4.1 describes for the defensive unlink case.
func TestTaskPreWokenTaskStillWaitsForRealMessage(t *testing.T) {
	bus := corobus.NewBus()
	h := bus.Open(1)
	task := corobus.NewTask()
	task.Wake()
	task.Wake()
	task.Wake()

	done := make(chan uint32, 1)
	go func() {
		v, err := bus.Recv(task, h)
		if err != nil {
			t.Errorf("Recv: %v", err)
			return
		}
		done <- v
	}()

	select {
	case <-done:
		t.Fatal("Recv returned before any value was sent")
	case <-time.After(50 * time.Millisecond):
	}

	if err := bus.TrySend(h, 5); err != nil {
		t.Fatalf("TrySend: %v", err)
	}
	select {
	case v := <-done:
		if v != 5 {
			t.Fatalf("Recv: got %d, want 5", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Recv never returned after the real send")
	}
}
