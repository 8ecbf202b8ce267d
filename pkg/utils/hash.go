package utils

import (
	"fmt"

	"github.com/cespare/xxhash"
)

// Checksum returns the xxhash of data. It is used to identify ROM images
// and to skip resending unchanged memory to monitor clients.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// Fingerprint returns Checksum formatted as 16 hex digits.
func Fingerprint(data []byte) string {
	return fmt.Sprintf("%016x", Checksum(data))
}
