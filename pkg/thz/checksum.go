// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

// Checksum computes the telegram checksum: the arithmetic sum of the header
// byte, the direction byte and every register data byte, modulo 256. The
// checksum position itself counts as zero and the DLE ETX footer is excluded.
func Checksum(direction Direction, data []byte) byte {
	sum := uint32(HeaderByte) + uint32(direction)
	for _, b := range data {
		sum += uint32(b)
	}
	return byte(sum % 256)
}

// VerifyChecksum reports whether want matches the checksum of the given
// header and register data.
func VerifyChecksum(direction Direction, data []byte, want byte) bool {
	return Checksum(direction, data) == want
}
