package trie

import (
	"bytes"
	"io"
	"strings"

	"github.com/jcalabro/lexis/internal/wordlist"
)

// WriteTo writes the stored words to w in lexicographic order as a
// comma-separated word list.
func (t *Trie) WriteTo(w io.Writer) (int64, error) {
	return wordlist.Write(w, t.Words())
}

// ReadFrom replaces the contents of t with the words of a comma-separated
// word list read from r. On error t is unchanged.
func (t *Trie) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: r}
	next := empty()
	if err := next.AddReader(cr); err != nil {
		return cr.n, err
	}
	*t = *next
	return cr.n, nil
}

// AddReader inserts every word of a comma-separated word list. It stops at
// the first word Insert rejects; earlier words stay inserted.
func (t *Trie) AddReader(r io.Reader) error {
	return wordlist.Scan(r, t.Insert)
}

// AddFile inserts every word of the comma-separated word list at path.
func (t *Trie) AddFile(path string) error {
	return wordlist.ScanFile(path, t.Insert)
}

// MarshalText implements encoding.TextMarshaler.
func (t *Trie) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It replaces the
// contents of t.
func (t *Trie) UnmarshalText(text []byte) error {
	_, err := t.ReadFrom(bytes.NewReader(text))
	return err
}

// String returns the stored words as "{a, b, c}".
func (t *Trie) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	_, _ = wordlist.Write(&sb, t.Words())
	return strings.TrimSuffix(sb.String(), "\n") + "}"
}

// countingReader counts the bytes read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
