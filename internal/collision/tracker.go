// Package collision tracks hash collisions among record names so the name
// index can still resolve every record, even when two records legitimately
// share a name. The SSBH Mesh format allows exactly this: several Mesh
// objects commonly share a name and are told apart only by their subindex
// field, so a same-name entry is ordinary data, not a corrupt file.
package collision

import "github.com/smashforge/ssbh/internal/errs"

// entry records one name registered under a given hash, together with the
// subindex that disambiguates it from any other record sharing the name.
type entry struct {
	name     string
	subindex int
}

// Tracker maps a name hash to every record name registered under it and
// flags when two different names hash to the same bucket (a true hash
// collision, as opposed to two records sharing one name on purpose).
type Tracker struct {
	byHash       map[uint64][]entry
	hasCollision bool
}

// NewTracker creates an empty collision tracker.
func NewTracker() *Tracker {
	return &Tracker{byHash: make(map[uint64][]entry)}
}

// Track registers name/subindex under hash. It returns ErrDuplicateName only
// when the same (name, subindex) pair is registered twice — a genuine
// duplicate, not an allowed name-sharing pair.
func (t *Tracker) Track(hash uint64, name string, subindex int) error {
	for _, e := range t.byHash[hash] {
		if e.name == name && e.subindex == subindex {
			return errs.ErrDuplicateName
		}
		if e.name != name {
			t.hasCollision = true
		}
	}

	t.byHash[hash] = append(t.byHash[hash], entry{name: name, subindex: subindex})

	return nil
}

// Lookup reports whether an entry with exactly this name and subindex is
// tracked under hash.
func (t *Tracker) Lookup(hash uint64, name string, subindex int) bool {
	for _, e := range t.byHash[hash] {
		if e.name == name && e.subindex == subindex {
			return true
		}
	}

	return false
}

// Names returns every name registered under hash, in registration order.
// When len(result) > 1 the bucket holds either genuine name-sharing records
// (disambiguated by subindex) or a true hash collision — HasCollision
// reports which, for diagnostics.
func (t *Tracker) Names(hash uint64) []string {
	bucket := t.byHash[hash]
	names := make([]string, len(bucket))
	for i, e := range bucket {
		names[i] = e.name
	}

	return names
}

// HasCollision reports whether any two distinct names were ever observed
// under the same hash bucket.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}
