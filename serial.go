// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package corobus

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing debug identifier for a Bus.
// Each call to NewBus assigns the next serial value; it plays no part
// in message delivery and exists only to give buses a stable identity
// in logs and error messages.
type Serial = uint64

// busCounter is the global monotonic counter for bus serials.
var busCounter atomix.Uint64

// nextBusSerial returns the next monotonically increasing serial.
func nextBusSerial() Serial {
	return busCounter.Add(1)
}
