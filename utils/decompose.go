package utils

import "fmt"

// Decompose splits value into limbCount little-endian limbs of limbBits bits
// each. It fails when the parameters are out of range or the value does not
// fit in limbBits*limbCount bits.
func Decompose(value uint64, limbBits, limbCount int) ([]uint64, error) {
	if limbBits < 1 || limbBits > 63 {
		return nil, fmt.Errorf("utils: limb width %d out of range", limbBits)
	}
	if limbCount < 1 || limbBits*limbCount > 64 {
		return nil, fmt.Errorf("utils: %d limbs of %d bits exceed 64 bits", limbCount, limbBits)
	}

	mask := uint64(1)<<limbBits - 1
	limbs := make([]uint64, limbCount)
	rest := value
	for i := range limbs {
		limbs[i] = rest & mask
		rest >>= limbBits
	}
	if rest != 0 {
		return nil, fmt.Errorf("utils: value %d does not fit in %d limbs of %d bits", value, limbCount, limbBits)
	}
	return limbs, nil
}

// Recompose is the inverse of Decompose.
func Recompose(limbs []uint64, limbBits int) uint64 {
	var value uint64
	for i := len(limbs) - 1; i >= 0; i-- {
		value = value<<limbBits | limbs[i]
	}
	return value
}
