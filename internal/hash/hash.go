// Package hash computes the lookup key used by the name index (see
// package data's NameIndex) to map Mesh object names to their owning
// records in O(1). Matl entry lookup does not use it.
package hash

import "github.com/cespare/xxhash/v2"

// Name computes the xxHash64 of a record name for use as a NameIndex key.
func Name(name string) uint64 {
	return xxhash.Sum64String(name)
}
