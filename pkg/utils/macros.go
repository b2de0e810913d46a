package utils

// BoolToUint8 returns 1 for true and 0 for false.
func BoolToUint8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
