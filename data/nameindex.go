package data

import (
	"fmt"

	"github.com/smashforge/ssbh/internal/collision"
	"github.com/smashforge/ssbh/internal/errs"
	"github.com/smashforge/ssbh/internal/hash"
)

// NameIndex resolves record names to their position in a slice in O(1),
// tolerating the legitimate name-sharing the Mesh format allows: several
// MeshObjectData entries commonly share a name and are told apart only by
// subindex (see ObjectByName).
type NameIndex struct {
	tracker *collision.Tracker
	byKey   map[nameKey]int
}

type nameKey struct {
	hash     uint64
	subindex int
}

// NewNameIndex builds an index over count entries, calling nameAt(i) to
// get each entry's (name, subindex) pair.
func NewNameIndex(count int, nameAt func(i int) (string, int)) (*NameIndex, error) {
	idx := &NameIndex{
		tracker: collision.NewTracker(),
		byKey:   make(map[nameKey]int, count),
	}

	for i := 0; i < count; i++ {
		name, sub := nameAt(i)
		h := hash.Name(name)

		if err := idx.tracker.Track(h, name, sub); err != nil {
			return nil, fmt.Errorf("%w: %q subindex %d", err, name, sub)
		}

		idx.byKey[nameKey{hash: h, subindex: sub}] = i
	}

	return idx, nil
}

// Lookup returns the slice index registered for (name, subindex).
func (idx *NameIndex) Lookup(name string, subindex int) (int, bool) {
	h := hash.Name(name)
	if !idx.tracker.Lookup(h, name, subindex) {
		return 0, false
	}

	i, ok := idx.byKey[nameKey{hash: h, subindex: subindex}]
	return i, ok
}

// MustLookup is Lookup but returns ErrNameNotFound instead of a bool, for
// callers that want a single error-checked path.
func (idx *NameIndex) MustLookup(name string, subindex int) (int, error) {
	i, ok := idx.Lookup(name, subindex)
	if !ok {
		return 0, fmt.Errorf("%w: %q subindex %d", errs.ErrNameNotFound, name, subindex)
	}

	return i, nil
}

// HasCollision reports whether two distinct names were ever observed
// hashing to the same bucket — a diagnostic, not a failure: the index
// still resolves correctly via subindex disambiguation.
func (idx *NameIndex) HasCollision() bool {
	return idx.tracker.HasCollision()
}

// NamesSharingBucketWith returns every name registered in the same hash
// bucket as name, in registration order. When HasCollision is true, callers
// can use this to tell a genuine hash collision apart from ordinary
// Mesh-style name sharing: a bucket holding only copies of name itself is
// name sharing, a bucket holding any other name is a true collision.
func (idx *NameIndex) NamesSharingBucketWith(name string) []string {
	return idx.tracker.Names(hash.Name(name))
}

// ObjectByName finds a MeshObjectData by (name, subindex), the pattern
// spec §9's grounding ledger calls out: "Mesh object names ... tolerates
// duplicate names disambiguated by (name, subindex)."
func (d *MeshData) ObjectByName(name string, subindex int) (*MeshObjectData, bool) {
	idx, err := NewNameIndex(len(d.Objects), func(i int) (string, int) {
		return d.Objects[i].Name, int(d.Objects[i].SubIndex)
	})
	if err != nil {
		return nil, false
	}

	i, ok := idx.Lookup(name, subindex)
	if !ok {
		return nil, false
	}

	return &d.Objects[i], true
}
