// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package corobus provides a multi-channel, bounded, in-process message
// bus for cooperatively scheduled coros running on a single logical
// thread of control.
//
// A [Bus] owns an indexed set of independently sized FIFO [Channel]s
// carrying uint32 messages. Producer and consumer coros send and
// receive by integer handle, suspending when a channel is full (send)
// or empty (recv) and resuming other runnable coros in the meantime.
//
// # Architecture
//
//   - Transport: bounded FIFO channels addressed by small integer
//     handles, indexed with generation tagging so a reused handle can
//     never be confused with the channel instance it replaced.
//   - Suspension: a coro parks on a [Task] handle it already owns —
//     there is no ambient "current task" lookup — and is woken by
//     [Task.Wake] when the channel's state changes.
//   - Non-blocking: try_* operations return [code.hybscloud.com/iox.ErrWouldBlock]
//     on backpressure/underrun instead of parking; the blocking forms are
//     a retry loop around the non-blocking form plus a suspend — the
//     "condition variable" discipline of re-testing the predicate after
//     every wake.
//   - Batch and broadcast: send_v/recv_v and broadcast/try_broadcast are
//     optional operation families, each compiled out entirely by a
//     build tag (nobatch, nobroadcast) rather than a runtime flag.
//
// # API Topologies
//
//   - Operations: [Bus.Send], [Bus.Recv], [Bus.Open], [Bus.Close].
//   - Non-blocking: [Bus.TrySend], [Bus.TryRecv].
//   - Batch: [Bus.SendV], [Bus.RecvV], [Bus.TrySendV], [Bus.TryRecvV].
//   - Broadcast: [Bus.Broadcast], [Bus.TryBroadcast].
//
// # Example
//
//	bus := corobus.NewBus()
//	h := bus.Open(1)
//	go func() {
//		_ = bus.Send(corobus.NewTask(), h, 7)
//	}()
//	v, _ := bus.Recv(corobus.NewTask(), h)
//	_ = v
//
// # Integration
//
// [Errno] and [SetErrno] provide the process-wide last-error slot
// described by the C-style external handle API; see subpackage
// corobus/cabi for the handle-table wrapper that exposes bus_new,
// channel_open, send/recv and friends against that slot. Subpackage
// corobus/compose builds declarative send/recv/close combinators for
// scripting a coro's operations without hand-writing the retry loop.
package corobus
