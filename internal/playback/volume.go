package playback

import "math"

// VolumePercent is one percent of the full volume range.
const VolumePercent = math.MaxUint16 / 100

// VolumeUp raises v by steps percent, saturating at the maximum.
func VolumeUp(v, steps uint16) uint16 {
	n := uint32(v) + uint32(VolumePercent)*uint32(steps)
	return uint16(min(n, math.MaxUint16))
}

// VolumeDown lowers v by steps percent, saturating at zero.
func VolumeDown(v, steps uint16) uint16 {
	n := int64(v) - int64(VolumePercent)*int64(steps)
	return uint16(max(n, 0))
}
