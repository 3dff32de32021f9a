package core

// DecodeSigned14 decodes one 2-byte FIFO slot into a signed acceleration (or
// temperature) code. The leading byte carries the axis tag in its top two
// bits and the six high bits of the 14-bit code; the trailing byte carries
// the low eight bits. Bit 13 is the sign bit and is extended through bits
// 14-15.
func DecodeSigned14(hi, lo byte) int16 {
	msb := hi & 0x3f
	if msb&0x20 != 0 {
		msb |= 0xc0
	}
	return int16(uint16(msb)<<8 | uint16(lo))
}

func (b *SampleBatch) slot(index, offset int) int16 {
	base := b.startOffset + index*b.sampleSize + offset
	return DecodeSigned14(b.buf[base], b.buf[base+1])
}

// X returns the X acceleration code of sample index (0..NumSamples-1).
func (b *SampleBatch) X(index int) int16 { return b.slot(index, 0) }

// Y returns the Y acceleration code of sample index.
func (b *SampleBatch) Y(index int) int16 { return b.slot(index, 2) }

// Z returns the Z acceleration code of sample index.
func (b *SampleBatch) Z(index int) int16 { return b.slot(index, 4) }

// T returns the temperature code of sample index. Only meaningful when the
// FIFO was configured with storeTemp (8-byte samples).
func (b *SampleBatch) T(index int) int16 { return b.slot(index, 6) }

// TemperatureC converts the temperature code of sample index to degrees
// Celsius (0.065 degrees per code).
func (b *SampleBatch) TemperatureC(index int) float32 {
	return float32(b.T(index)) / 16.0
}
