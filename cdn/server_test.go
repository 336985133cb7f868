package cdn

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcalabro/lexis/internal/wordlist"
)

func TestServerCheckWordCountsEveryCall(t *testing.T) {
	s := New()
	s.AddWord("cat")
	s.AddWord("dog")
	s.AddWord("cat")
	require.Equal(t, 2, s.Len())
	require.Zero(t, s.UsageCount())

	require.True(t, s.CheckWord("cat"))
	require.False(t, s.CheckWord("bird"))
	require.True(t, s.CheckWord("dog"))
	require.Equal(t, uint64(3), s.UsageCount())
}

func TestServerLoadReader(t *testing.T) {
	s := New()
	require.NoError(t, s.LoadReader(strings.NewReader("apple, banana, cherry\n")))
	require.Equal(t, 3, s.Len())
	require.True(t, s.CheckWord("banana"))
	require.Equal(t, uint64(1), s.UsageCount())
}

func TestServerLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("red, green"), 0o600))

	s := New()
	require.NoError(t, s.LoadFile(path))
	require.Equal(t, 2, s.Len())

	err := s.LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.ErrorIs(t, err, wordlist.ErrRead)
}

func TestServerRAMUsage(t *testing.T) {
	s := New()
	require.Zero(t, s.RAMUsage())

	s.AddWord("a")
	small := s.RAMUsage()
	require.Positive(t, small)

	s.AddWord(strings.Repeat("z", 4096))
	require.Greater(t, s.RAMUsage(), small+4)
}
