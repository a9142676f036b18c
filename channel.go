// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

// Channel is a bounded FIFO of uint32 messages plus the two wait
// queues coros park on when they cannot make progress: sendWaiters
// (channel full) and recvWaiters (channel empty). Behavior lives in
// the Bus operations; Channel itself is a plain data holder, matching
// spec.md section 4.2.
//
// Invariants, maintained by every Bus operation that touches a
// Channel:
//
//	0 <= len(buffer) <= capacity
//	len(buffer) < capacity  =>  sendWaiters is empty
//	len(buffer) > 0         =>  recvWaiters is empty
type Channel struct {
	capacity uint32
	buffer   []uint32

	sendWaiters WaitQueue
	recvWaiters WaitQueue
}

func newChannel(capacity uint32) *Channel {
	return &Channel{capacity: capacity}
}

func (ch *Channel) full() bool {
	return uint32(len(ch.buffer)) >= ch.capacity
}

func (ch *Channel) empty() bool {
	return len(ch.buffer) == 0
}

func (ch *Channel) free() uint32 {
	n := ch.capacity - uint32(len(ch.buffer))
	if int32(n) < 0 {
		return 0
	}
	return n
}

func (ch *Channel) pushBack(v uint32) {
	ch.buffer = append(ch.buffer, v)
}

func (ch *Channel) popFront() uint32 {
	v := ch.buffer[0]
	ch.buffer = ch.buffer[1:]
	return v
}
