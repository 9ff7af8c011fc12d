package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStore struct {
	*MemoryStore
}

func (brokenStore) Set(string, string) error { return errors.New("disk full") }
func (brokenStore) Remove(string) error      { return errors.New("disk full") }

func TestMirror(t *testing.T) {
	primary := NewMemoryStore()
	secondary := NewMemoryStore()
	m := Mirror(primary, secondary, KeyIndex)

	require.NoError(t, m.Set(KeyIndex, "2"))
	require.NoError(t, m.Set(KeyPlaylist, `["a.html"]`))

	assert.Equal(t, map[string]string{KeyIndex: "2", KeyPlaylist: `["a.html"]`}, primary.Snapshot())
	assert.Equal(t, map[string]string{KeyIndex: "2"}, secondary.Snapshot())

	v, ok, err := m.Get(KeyIndex)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	require.NoError(t, Clear(m))
	assert.Empty(t, primary.Snapshot())
	assert.Empty(t, secondary.Snapshot())
}

func TestMirror_SecondaryFailure(t *testing.T) {
	primary := NewMemoryStore()
	m := Mirror(primary, brokenStore{NewMemoryStore()}, KeyIndex)

	err := m.Set(KeyIndex, "1")
	assert.Error(t, err)
	v, _, _ := primary.Get(KeyIndex)
	assert.Equal(t, "1", v, "primary write is kept")

	assert.NoError(t, m.Set(KeyTitles, "{}"), "unmirrored keys skip the secondary")
	assert.Error(t, m.Remove(KeyIndex))
}

func TestRestore(t *testing.T) {
	dst := NewMemoryStore()
	src := NewMemoryStore()
	require.NoError(t, src.Set(KeyIndex, "3"))
	require.NoError(t, src.Set(KeyConfig, `{"speed":90}`))
	require.NoError(t, dst.Set(KeyConfig, `{"speed":120}`))

	copied, err := Restore(dst, src, KeyIndex, KeyConfig, KeyTitles)
	require.NoError(t, err)
	assert.Equal(t, []string{KeyIndex}, copied)

	v, _, _ := dst.Get(KeyIndex)
	assert.Equal(t, "3", v)
	v, _, _ = dst.Get(KeyConfig)
	assert.Equal(t, `{"speed":120}`, v, "existing values win")
}
