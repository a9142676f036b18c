// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !nobroadcast

package cabi

import "code.hybscloud.com/corobus"

// TryBroadcast is the non-blocking broadcast entry point.
func TryBroadcast(bus int32, value uint32) int32 {
	b := resolveBus(bus)
	if b == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	return setErrno(b.TryBroadcast(value))
}

// Broadcast is the blocking broadcast entry point, parking task on
// whichever channel is currently the write's blocker.
func Broadcast(bus int32, task int32, value uint32) int32 {
	b := resolveBus(bus)
	t := resolveTask(task)
	if b == nil || t == nil {
		corobus.SetErrno(corobus.CodeNoChannel)
		return StatusErr
	}
	return setErrno(b.Broadcast(t, value))
}
