package solver

import "math"

// unsignedRoundingBias matches the source's exact constant: rounding a
// nonnegative f32 to u16 by adding just under 0.5 rather than 0.5, since
// the source's reference implementation measured this as the bias that
// round-trips its test fixtures exactly.
const unsignedRoundingBias = 0.49999997

// EncodeSigned quantises slice into dst as signed 16-bit values scaled by
// slice's absolute maximum, returning that scale factor (needed to decode
// later). Used to compress accumulated regrets/counterfactual values for
// long-running solves. Ported from encode_signed_slice in slice_ops.rs.
func EncodeSigned(dst []int16, slice []float32) float32 {
	scale := absMax(slice)
	scaleNonzero := scale
	if scaleNonzero == 0 {
		scaleNonzero = 1
	}
	encoder := float32(math.MaxInt16) / scaleNonzero
	for i, v := range slice {
		dst[i] = int16(math.Round(float64(v * encoder)))
	}
	return scale
}

// DecodeSigned expands a signed-16-bit compressed slice back to float32
// given the scale factor EncodeSigned returned.
func DecodeSigned(slice []int16, scale float32) []float32 {
	out := make([]float32, len(slice))
	decoder := scale / float32(math.MaxInt16)
	for i, v := range slice {
		out[i] = float32(v) * decoder
	}
	return out
}

// EncodeUnsigned quantises slice (assumed nonnegative, e.g. a strategy) into
// dst as unsigned 16-bit values scaled by slice's maximum, returning that
// scale factor. Ported from encode_unsigned_slice in slice_ops.rs.
func EncodeUnsigned(dst []uint16, slice []float32) float32 {
	scale := nonnegativeMax(slice)
	scaleNonzero := scale
	if scaleNonzero == 0 {
		scaleNonzero = 1
	}
	encoder := float32(math.MaxUint16) / scaleNonzero
	for i, v := range slice {
		dst[i] = uint16(v*encoder + unsignedRoundingBias)
	}
	return scale
}

// DecodeUnsigned expands an unsigned-16-bit compressed slice back to
// float32 given the scale factor EncodeUnsigned returned.
func DecodeUnsigned(slice []uint16, scale float32) []float32 {
	out := make([]float32, len(slice))
	decoder := scale / float32(math.MaxUint16)
	for i, v := range slice {
		out[i] = float32(v) * decoder
	}
	return out
}

func absMax(s []float32) float32 {
	var m float32
	for _, v := range s {
		a := v
		if a < 0 {
			a = -a
		}
		if a > m {
			m = a
		}
	}
	return m
}

func nonnegativeMax(s []float32) float32 {
	var m float32
	for _, v := range s {
		if v > m {
			m = v
		}
	}
	return m
}
