package bst

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type name struct {
	first, last string
}

func compareNames(a, b *name) int {
	if c := strings.Compare(a.last, b.last); c != 0 {
		return c
	}
	return strings.Compare(a.first, b.first)
}

func TestMapRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.bst")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	m := NewOrdered[int, string]()
	keys := []int{50, 20, 80, 10, 30, 70, 90, 25, 35, 85}
	for _, k := range keys {
		require.NoError(t, m.Add(k, fmt.Sprintf("v%d", k)))
	}
	for _, k := range keys {
		v, found, err := m.TryGetValue(k)
		require.NoError(t, err)
		assert.True(t, found, "key %d", k)
		assert.Equal(t, fmt.Sprintf("v%d", k), v)
	}
	v, found, err := m.TryGetValue(42)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, "", v)
	assert.Equal(t, []int{10, 20, 25, 30, 35, 50, 70, 80, 85, 90}, inorder(m.Root()))
}

func TestMapGet(t *testing.T) {
	m := NewOrdered[string, int]()
	require.NoError(t, m.Add("SMITH", 1))
	assert.Equal(t, 1, m.Get("SMITH").WithDefault(-1))
	assert.Equal(t, -1, m.Get("JONES").WithDefault(-1))
}

func TestMapDuplicateRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.bst")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	m := NewOrdered[string, int]()
	require.NoError(t, m.Add("k", 1))
	root, writes := m.Root(), m.Writes()
	err := m.Add("k", 2)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Same(t, root, m.Root(), "failed Add must not replace the root")
	assert.Equal(t, writes, m.Writes())
	v, found, err := m.TryGetValue("k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, v)
}

func TestMapInvalidKeys(t *testing.T) {
	m := New[*name, int](compareNames)
	require.NoError(t, m.Add(&name{"Ada", "Lovelace"}, 1815))

	_, _, err := m.TryGetValue(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	err = m.Add(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	removed, err := m.Remove(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.False(t, removed)
	assert.Equal(t, uint64(1), m.Writes(), "rejected calls must not touch the root")

	v, found, err := m.TryGetValue(&name{"Ada", "Lovelace"})
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1815, v)
}

func TestMapKeyValidator(t *testing.T) {
	m := NewOrdered[string, int](WithKeyValidator[string, int](func(s string) bool {
		return s != ""
	}))
	assert.ErrorIs(t, m.Add("", 1), ErrInvalidArgument)
	assert.NoError(t, m.Add("x", 1))
	assert.ErrorIs(t, m.CheckKey(""), ErrInvalidArgument)
	assert.True(t, m.Get("").WithDefault(0) == 0)
}

func TestMapUninitialized(t *testing.T) {
	var m Map[int, int]
	assert.Panics(t, func() { m.Add(1, 1) })
	assert.Panics(t, func() { New[int, int](nil) })
}

func TestMapRemove(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.bst")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	m := NewOrdered[int, string]()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		require.NoError(t, m.Add(k, fmt.Sprint(k)))
	}
	removed, err := m.Remove(5)
	require.NoError(t, err)
	assert.True(t, removed)
	_, found, _ := m.TryGetValue(5)
	assert.False(t, found)
	v, found, _ := m.TryGetValue(7)
	assert.True(t, found)
	assert.Equal(t, "7", v)
	assert.Equal(t, []int{1, 3, 4, 7, 8, 9}, inorder(m.Root()))
	for _, k := range []int{1, 3, 4, 8, 9} {
		v, found, _ := m.TryGetValue(k)
		assert.True(t, found, "key %d", k)
		assert.Equal(t, fmt.Sprint(k), v)
	}
}

func TestMapRemoveMissingStillWritesRoot(t *testing.T) {
	m := NewOrdered[int, int]()
	removed, err := m.Remove(1)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, uint64(1), m.Writes())
	assert.True(t, m.IsEmpty())

	require.NoError(t, m.Add(1, 1))
	removed, err = m.Remove(2)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, uint64(3), m.Writes())
	assert.Equal(t, []int{1}, inorder(m.Root()))
}

func TestMapPersistence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.bst")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	m := NewOrdered[int, string]()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		require.NoError(t, m.Add(k, fmt.Sprint(k)))
	}
	v1 := m.Snapshot()
	oldRoot := m.Root()
	require.NoError(t, m.Add(6, "6"))
	_, err := m.Remove(3)
	require.NoError(t, err)
	_, err = m.Remove(5)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, inorder(v1.Root()))
	assert.Same(t, oldRoot, v1.Root())
	v, found, err := v1.TryGetValue(3)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "3", v)
	_, found, _ = v1.TryGetValue(6)
	assert.False(t, found)
	assert.Equal(t, []int{1, 4, 6, 7, 8, 9}, inorder(m.Root()))

	m.Restore(v1)
	assert.Equal(t, []int{1, 3, 4, 5, 7, 8, 9}, inorder(m.Root()))
}

func TestVersionZeroValue(t *testing.T) {
	var v Version[int, int]
	assert.True(t, v.IsEmpty())
	assert.Equal(t, 0, v.Height())
	_, found, err := v.TryGetValue(1)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestVersionConcurrentReaders(t *testing.T) {
	m := NewOrdered[int, int]()
	for _, k := range []int{50, 20, 80, 10, 30, 70, 90} {
		require.NoError(t, m.Add(k, k*10))
	}
	snapshot := m.Snapshot()
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, k := range []int{50, 20, 80, 10, 30, 70, 90} {
				if v, found, _ := snapshot.TryGetValue(k); !found || v != k*10 {
					errs <- fmt.Sprintf("lookup of %d failed", k)
				}
			}
		}()
	}
	// single writer keeps modifying the map while readers walk the snapshot
	for _, k := range []int{50, 20, 80} {
		_, err := m.Remove(k)
		require.NoError(t, err)
	}
	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
	assert.Equal(t, 3, snapshot.Height())
}

func TestMapRandomOperationsKeepOrderAndVersions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fp.bst")
	tracer().SetTraceLevel(tracing.LevelError)
	defer teardown()
	//
	type version struct {
		snapshot Version[int, int]
		entries  map[int]int
	}
	rnd := rand.New(rand.NewSource(4711))
	m := NewOrdered[int, int]()
	current := map[int]int{}
	var versions []version
	for step := 0; step < 400; step++ {
		k := rnd.Intn(64)
		if rnd.Intn(3) == 0 {
			removed, err := m.Remove(k)
			require.NoError(t, err)
			_, present := current[k]
			require.Equal(t, present, removed, "step %d: remove %d", step, k)
			delete(current, k)
		} else {
			err := m.Add(k, step)
			if _, present := current[k]; present {
				require.ErrorIs(t, err, ErrDuplicateKey, "step %d: add %d", step, k)
			} else {
				require.NoError(t, err, "step %d: add %d", step, k)
				current[k] = step
			}
		}
		keys := inorder(m.Root())
		for i := 1; i < len(keys); i++ {
			if keys[i-1] >= keys[i] {
				t.Logf("tree =\n%s", printTree(m.Root()))
				t.Fatalf("step %d: in-order keys not strictly increasing: %v", step, keys)
			}
		}
		require.Len(t, keys, len(current), "step %d", step)
		entries := make(map[int]int, len(current))
		for k, v := range current {
			entries[k] = v
		}
		versions = append(versions, version{snapshot: m.Snapshot(), entries: entries})
	}
	for i, ver := range versions {
		require.Len(t, inorder(ver.snapshot.Root()), len(ver.entries), "version %d", i)
		for k, want := range ver.entries {
			v, found, err := ver.snapshot.TryGetValue(k)
			require.NoError(t, err)
			if !found || v != want {
				t.Fatalf("version %d: expected %d -> %d, have (%d, %v)", i, k, want, v, found)
			}
		}
	}
}

func TestMapGetIncomparableValues(t *testing.T) {
	m := NewOrdered[string, []byte]()
	require.NoError(t, m.Add("k", []byte("v")))
	var v []byte
	switch mm := m.Get("k").Match(); mm {
	case mm.Just(&v):
	case mm.Nothing():
		t.Error("expected to find k")
	}
	assert.Equal(t, []byte("v"), v)
	_, ok := m.Get("x").Get()
	assert.False(t, ok)
}
