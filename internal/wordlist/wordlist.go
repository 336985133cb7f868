// Package wordlist reads and writes the comma-separated word lists used for
// bulk loading filters, tries and servers.
//
// A list is a sequence of tokens separated by ", ". Surrounding whitespace
// (including line breaks) is ignored and empty tokens are skipped, so a list
// may be wrapped over several lines.
package wordlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
)

// Separator is written between consecutive words.
const Separator = ", "

// MaxTokenSize bounds a single token. Longer tokens fail the scan with
// bufio.ErrTooLong.
const MaxTokenSize = 1 << 20

// ErrRead wraps every failure to read a word list.
var ErrRead = errors.New("wordlist: read failed")

// Scan calls fn for every token in r, in order. The first error returned by
// fn stops the scan and is returned unchanged; read failures are wrapped in
// ErrRead.
func Scan(r io.Reader, fn func(word string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), MaxTokenSize)
	sc.Split(splitComma)

	for sc.Scan() {
		tok := bytes.TrimSpace(sc.Bytes())
		if len(tok) == 0 {
			continue
		}
		if err := fn(string(tok)); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	return nil
}

// ScanFile opens path and scans it with Scan.
func ScanFile(path string, fn func(word string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	return Scan(f, fn)
}

// Write writes words to w separated by Separator, followed by a newline if
// at least one word was written.
func Write(w io.Writer, words iter.Seq[string]) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	first := true
	for word := range words {
		if !first {
			m, _ := bw.WriteString(Separator)
			n += int64(m)
		}
		m, _ := bw.WriteString(word)
		n += int64(m)
		first = false
	}
	if !first {
		_ = bw.WriteByte('\n')
		n++
	}
	return n, bw.Flush()
}

// splitComma is a bufio.SplitFunc yielding the bytes between commas.
func splitComma(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if i := bytes.IndexByte(data, ','); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF && len(data) > 0 {
		return len(data), data, nil
	}
	return 0, nil, nil
}
