// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus_test

import (
	"errors"
	"testing"
	"time"

	"code.hybscloud.com/corobus"
)

func TestTrySendTryRecvRoundTrip(t *testing.T) {
	bus := corobus.NewBus()
	h := bus.Open(2)

	if err := bus.TrySend(h, 1); err != nil {
		t.Fatalf("TrySend: %v", err)
	}
	if err := bus.TrySend(h, 2); err != nil {
		t.Fatalf("TrySend: %v", err)
	}
	if err := bus.TrySend(h, 3); !errors.Is(err, corobus.ErrWouldBlock) {
		t.Fatalf("TrySend on full channel: got %v, want ErrWouldBlock", err)
	}

	v, err := bus.TryRecv(h)
	if err != nil || v != 1 {
		t.Fatalf("TryRecv: got (%d, %v), want (1, nil)", v, err)
	}
	v, err = bus.TryRecv(h)
	if err != nil || v != 2 {
		t.Fatalf("TryRecv: got (%d, %v), want (2, nil)", v, err)
	}
	if _, err := bus.TryRecv(h); !errors.Is(err, corobus.ErrWouldBlock) {
		t.Fatalf("TryRecv on empty channel: got %v, want ErrWouldBlock", err)
	}
}

func TestTrySendTryRecvNoChannel(t *testing.T) {
	bus := corobus.NewBus()
	if err := bus.TrySend(7, 1); !errors.Is(err, corobus.ErrNoChannel) {
		t.Fatalf("TrySend on unopened handle: got %v, want ErrNoChannel", err)
	}
	if _, err := bus.TryRecv(7); !errors.Is(err, corobus.ErrNoChannel) {
		t.Fatalf("TryRecv on unopened handle: got %v, want ErrNoChannel", err)
	}
}

// TestUnbufferedHandoff is spec scenario 1: capacity 1, two sends and two
// receives interleaved by suspension.
func TestUnbufferedHandoff(t *testing.T) {
	bus := corobus.NewBus()
	h := bus.Open(1)

	taskA := corobus.NewTask()
	sendErrs := make(chan error, 2)
	go func() {
		sendErrs <- bus.Send(taskA, h, 7)
		sendErrs <- bus.Send(taskA, h, 8)
	}()

	// Give A's first send time to land uncontested.
	time.Sleep(20 * time.Millisecond)

	taskB := corobus.NewTask()
	v, err := bus.Recv(taskB, h)
	if err != nil || v != 7 {
		t.Fatalf("first Recv: got (%d, %v), want (7, nil)", v, err)
	}

	v, err = bus.Recv(taskB, h)
	if err != nil || v != 8 {
		t.Fatalf("second Recv: got (%d, %v), want (8, nil)", v, err)
	}

	for i := 0; i < 2; i++ {
		select {
		case err := <-sendErrs:
			if err != nil {
				t.Fatalf("Send: %v", err)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for sender to complete")
		}
	}
}

// TestCloseWakesBlockedSender is spec scenario 2 and the "close wakes
// all" property: a coro suspended on send_waiters observes ErrNoChannel
// once the channel it was waiting on closes.
func TestCloseWakesBlockedSender(t *testing.T) {
	bus := corobus.NewBus()
	h := bus.Open(1)

	if err := bus.TrySend(h, 1); err != nil {
		t.Fatalf("TrySend: %v", err)
	}

	task := corobus.NewTask()
	done := make(chan error, 1)
	go func() {
		done <- bus.Send(task, h, 2)
	}()

	time.Sleep(20 * time.Millisecond)
	bus.Close(h)

	select {
	case err := <-done:
		if !errors.Is(err, corobus.ErrNoChannel) {
			t.Fatalf("Send after Close: got %v, want ErrNoChannel", err)
		}
	case <-time.After(time.Second):
		t.Fatal("blocked sender was never woken by Close")
	}
}

// TestHandleReuseGenerationCheck is spec scenario 3: closing and
// reopening a handle bumps its generation, so a coro suspended before
// the close/reopen observes ErrNoChannel rather than silently attaching
// to the replacement channel.
func TestHandleReuseGenerationCheck(t *testing.T) {
	bus := corobus.NewBus()
	h := bus.Open(1)
	if err := bus.TrySend(h, 1); err != nil {
		t.Fatalf("TrySend: %v", err)
	}

	task := corobus.NewTask()
	done := make(chan error, 1)
	go func() {
		done <- bus.Send(task, h, 2)
	}()
	time.Sleep(20 * time.Millisecond)

	bus.Close(h)
	h2 := bus.Open(4)
	if h2 != h {
		t.Fatalf("expected tombstone reuse at index %d, got %d", h, h2)
	}

	select {
	case err := <-done:
		if !errors.Is(err, corobus.ErrNoChannel) {
			t.Fatalf("Send across reopen: got %v, want ErrNoChannel", err)
		}
	case <-time.After(time.Second):
		t.Fatal("suspended sender was never woken across close/reopen")
	}

	// The new channel at the reused index must be unaffected.
	if err := bus.TrySend(h2, 99); err != nil {
		t.Fatalf("TrySend on reopened channel: %v", err)
	}
}

func TestFIFOWakeOrder(t *testing.T) {
	bus := corobus.NewBus()
	h := bus.Open(1)

	type result struct {
		id  int
		val uint32
	}
	results := make(chan result, 3)
	tasks := make([]*corobus.Task, 3)
	for i := 0; i < 3; i++ {
		tasks[i] = corobus.NewTask()
	}
	for i := 0; i < 3; i++ {
		go func(id int) {
			v, err := bus.Recv(tasks[id], h)
			if err != nil {
				t.Errorf("Recv %d: %v", id, err)
				return
			}
			results <- result{id: id, val: v}
		}(i)
		time.Sleep(10 * time.Millisecond) // enforce arrival order
	}

	for want := uint32(0); want < 3; want++ {
		if err := bus.TrySend(h, want); err != nil {
			t.Fatalf("TrySend %d: %v", want, err)
		}
		select {
		case r := <-results:
			if uint32(r.id) != want || r.val != want {
				t.Fatalf("wake order violated: got receiver %d value %d, want receiver %d value %d", r.id, r.val, want, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for receiver %d", want)
		}
	}
}

func TestDeleteWithLiveWaitersPanics(t *testing.T) {
	bus := corobus.NewBus()
	h := bus.Open(0)

	task := corobus.NewTask()
	started := make(chan struct{})
	go func() {
		close(started)
		_, _ = bus.Recv(task, h)
	}()
	<-started
	time.Sleep(20 * time.Millisecond)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("Delete with a live waiter did not panic")
		}
		bus.Close(h)
	}()
	bus.Delete()
}

// TestPairingLiveness is spec section 8's "liveness under pairing"
// property: on a small-capacity channel with no sleeps to serialize
// producer and consumer, a full run of Send/Recv pairs must complete.
// It specifically covers the interleaving where TryRecv drains the
// buffer and finds send_waiters empty (nothing enqueued yet) between a
// blocked sender's failed TrySend and its re-acquisition of the lock;
// without re-checking ch.full() in that second critical section the
// sender enqueues on send_waiters after the space it was waiting for
// already exists and no one is left to wake it.
func TestPairingLiveness(t *testing.T) {
	bus := corobus.NewBus()
	h := bus.Open(1)
	const n = 2000

	sender := corobus.NewTask()
	receiver := corobus.NewTask()

	done := make(chan error, 1)
	go func() {
		for i := uint32(0); i < n; i++ {
			if err := bus.Send(sender, h, i); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	for i := uint32(0); i < n; i++ {
		v, err := bus.Recv(receiver, h)
		if err != nil {
			t.Fatalf("Recv %d: %v", i, err)
		}
		if v != i {
			t.Fatalf("Recv %d: got %d, want %d", i, v, i)
		}
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Send: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("sender never completed: missed wakeup (deadlock)")
	}
}

func TestOpenReusesLowestTombstone(t *testing.T) {
	bus := corobus.NewBus()
	a := bus.Open(1)
	b := bus.Open(1)
	_ = bus.Open(1)

	bus.Close(a)
	bus.Close(b)

	reused := bus.Open(1)
	if reused != a {
		t.Fatalf("Open after closing %d and %d: got %d, want lowest index %d", a, b, reused, a)
	}
}
