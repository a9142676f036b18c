// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !nobatch

package cabi

import "code.hybscloud.com/corobus"

// TrySendV is the non-blocking batched send entry point. Returns the
// count written, or -1 on failure (bus or channel does not resolve, or
// the channel is full); Errno holds the cause.
func TrySendV(bus int32, handle int32, buf []uint32) int32 {
	b := resolveBus(bus)
	if b == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	n, err := b.TrySendV(int(handle), buf)
	if err != nil {
		setErrno(err)
		return StatusErr
	}
	setErrno(nil)
	return int32(n)
}

// SendV is the blocking batched send entry point.
func SendV(bus int32, task int32, handle int32, buf []uint32) int32 {
	b := resolveBus(bus)
	t := resolveTask(task)
	if b == nil || t == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	n, err := b.SendV(t, int(handle), buf)
	if err != nil {
		setErrno(err)
		return StatusErr
	}
	setErrno(nil)
	return int32(n)
}

// TryRecvV is the non-blocking batched receive entry point. Returns the
// count read into buf, or -1 on failure (bus or channel does not resolve,
// or the channel is empty); Errno holds the cause.
func TryRecvV(bus int32, handle int32, buf []uint32) int32 {
	b := resolveBus(bus)
	if b == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	n, err := b.TryRecvV(int(handle), buf)
	if err != nil {
		setErrno(err)
		return StatusErr
	}
	setErrno(nil)
	return int32(n)
}

// RecvV is the blocking batched receive entry point.
func RecvV(bus int32, task int32, handle int32, buf []uint32) int32 {
	b := resolveBus(bus)
	t := resolveTask(task)
	if b == nil || t == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	n, err := b.RecvV(t, int(handle), buf)
	if err != nil {
		setErrno(err)
		return StatusErr
	}
	setErrno(nil)
	return int32(n)
}
