package midi

// DecodeRelative turns a relative encoder byte into a signed step.
// Bit 6 is the sign, bits 0-5 the magnitude in two's complement.
// There is no absolute mode: a control sending absolute positions reads
// as large negative steps above 64 and positive steps below it.
func DecodeRelative(v uint8) int {
	return int(v&0x3F) - 64*int((v&0x40)>>6)
}

// EncodeRelative is the inverse of DecodeRelative, clamped to -64..63.
func EncodeRelative(step int) uint8 {
	if step < -64 {
		step = -64
	}
	if step > 63 {
		step = 63
	}
	return uint8(step) & 0x7F
}
