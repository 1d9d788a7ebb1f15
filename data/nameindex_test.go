package data

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNameIndexLookup(t *testing.T) {
	names := []struct {
		name string
		sub  int
	}{
		{"arm_l", 0},
		{"arm_r", 0},
		{"finger", 0},
		{"finger", 1},
	}

	idx, err := NewNameIndex(len(names), func(i int) (string, int) {
		return names[i].name, names[i].sub
	})
	require.NoError(t, err)

	i, ok := idx.Lookup("arm_r", 0)
	require.True(t, ok)
	require.Equal(t, 1, i)

	i, ok = idx.Lookup("finger", 1)
	require.True(t, ok)
	require.Equal(t, 3, i)

	_, ok = idx.Lookup("missing", 0)
	require.False(t, ok)
}

func TestNameIndexMustLookupError(t *testing.T) {
	idx, err := NewNameIndex(1, func(i int) (string, int) { return "only", 0 })
	require.NoError(t, err)

	_, err = idx.MustLookup("only", 1)
	require.Error(t, err)

	i, err := idx.MustLookup("only", 0)
	require.NoError(t, err)
	require.Equal(t, 0, i)
}

func TestNamesSharingBucketWith(t *testing.T) {
	names := []struct {
		name string
		sub  int
	}{
		{"finger", 0},
		{"finger", 1},
		{"finger", 2},
	}

	idx, err := NewNameIndex(len(names), func(i int) (string, int) {
		return names[i].name, names[i].sub
	})
	require.NoError(t, err)

	require.False(t, idx.HasCollision(), "same name at different subindexes is sharing, not a collision")
	require.Equal(t, []string{"finger", "finger", "finger"}, idx.NamesSharingBucketWith("finger"))
}

func TestObjectByNameDisambiguatesBySubindex(t *testing.T) {
	md := &MeshData{
		Objects: []MeshObjectData{
			{Name: "body", SubIndex: 0},
			{Name: "body", SubIndex: 1},
		},
	}

	obj, ok := md.ObjectByName("body", 1)
	require.True(t, ok)
	require.Equal(t, int64(1), obj.SubIndex)

	_, ok = md.ObjectByName("body", 2)
	require.False(t, ok)
}
