// Package crc32 implements the CRC-32 checksum stored in ZIP entry headers.
//
// The implementation is the table-driven variant of the reflected
// CRC-32 used by the ZIP format (polynomial 0xEDB88320). It exists so
// that archive assembly has no dependency on an archiving or hashing
// library; the stdlib hash/crc32 package computes the same function and
// serves as the oracle in tests.
package crc32

import "sync"

// poly is the reflected form of the CRC-32 generator polynomial.
const poly = 0xEDB88320

// seed is the initial accumulator value, also applied as the final
// XOR mask.
const seed = 0xFFFFFFFF

// table returns the 256-entry lookup table, built once on first use.
var table = sync.OnceValue(makeTable)

func makeTable() *[256]uint32 {
	var t [256]uint32
	for i := range t {
		crc := uint32(i) //nolint:gosec // i is 0-255
		for range 8 {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ poly
			} else {
				crc >>= 1
			}
		}
		t[i] = crc
	}
	return &t
}

// Checksum returns the CRC-32 of data.
//
// The empty input yields 0. The function is pure: no state is carried
// between calls and concurrent use is safe.
func Checksum(data []byte) uint32 {
	t := table()
	crc := uint32(seed)
	for _, b := range data {
		crc = (crc >> 8) ^ t[byte(crc)^b]
	}
	return crc ^ seed
}
