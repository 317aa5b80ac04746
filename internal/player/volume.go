package player

import (
	"math"
)

// levelToVolume converts a 0..MaxUint16 volume to beep's base-2 gain.
// beep's Volume is 0 for unchanged, -1 for half, -2 for quarter, and so on.
// Zero is reported as silent.
func levelToVolume(v uint16) (gain float64, silent bool) {
	if v == 0 {
		return -10, true
	}
	if v == math.MaxUint16 {
		return 0, false
	}
	return math.Log2(float64(v) / math.MaxUint16), false
}
