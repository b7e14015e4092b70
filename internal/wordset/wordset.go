// Package wordset loads and queries the static set of words the evolution
// converges toward.
package wordset

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/specialistvlad/weasel/internal/ctxlog"
	"github.com/specialistvlad/weasel/internal/fsutil"
)

var (
	// ErrSourceNotFound is returned when the word source path does not exist.
	ErrSourceNotFound = errors.New("word source not found")
	// ErrNoWords is returned when the source yields no usable words.
	ErrNoWords = errors.New("no words loaded for the given minimum block")
)

// listExtension is the extension searched for when the source is a directory.
const listExtension = ".txt"

// Set is an immutable membership oracle over lowercase words.
type Set struct {
	words   map[string]struct{}
	lengths map[int]int
}

// New builds a Set from already-normalised words. Entries shorter than
// minBlock or containing anything but lowercase letters are ignored.
func New(minBlock int, words ...string) *Set {
	s := &Set{
		words:   make(map[string]struct{}, len(words)),
		lengths: make(map[int]int),
	}
	for _, w := range words {
		s.add(w, minBlock)
	}
	return s
}

func (s *Set) add(w string, minBlock int) {
	if len(w) < minBlock || !isLower(w) {
		return
	}
	if _, ok := s.words[w]; ok {
		return
	}
	s.words[w] = struct{}{}
	s.lengths[len(w)]++
}

// Contains reports whether token is in the set.
func (s *Set) Contains(token string) bool {
	_, ok := s.words[token]
	return ok
}

// Len returns the number of distinct words.
func (s *Set) Len() int {
	return len(s.words)
}

// LengthHistogram returns how many words exist for each word length. The
// returned map is a copy.
func (s *Set) LengthHistogram() map[int]int {
	out := make(map[int]int, len(s.lengths))
	for k, v := range s.lengths {
		out[k] = v
	}
	return out
}

// Words returns the words in sorted order.
func (s *Set) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Accept normalises a raw word-list line. It returns the lowercase word and
// true when the line is purely alphabetic, not written entirely in uppercase,
// and at least minBlock letters long.
func Accept(line string, minBlock int) (string, bool) {
	w := strings.TrimSpace(line)
	if w == "" || !isAlpha(w) {
		return "", false
	}
	if isUpper(w) {
		return "", false
	}
	lw := strings.ToLower(w)
	if len(lw) < minBlock {
		return "", false
	}
	return lw, true
}

// Read consumes a newline-delimited list into a new Set.
func Read(r io.Reader, minBlock int) (*Set, error) {
	s := New(minBlock)
	if err := s.read(r, minBlock); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Set) read(r io.Reader, minBlock int) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if w, ok := Accept(sc.Text(), minBlock); ok {
			s.add(w, minBlock)
		}
	}
	return sc.Err()
}

// Load reads the word source at path. A directory is searched recursively for
// .txt lists and all of them are merged. It fails with ErrSourceNotFound when
// the path does not exist and with ErrNoWords when nothing usable was read.
func Load(ctx context.Context, path string, minBlock int) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading word source.", "path", path, "min_block", minBlock)

	files, err := fsutil.ResolveFiles(path, listExtension)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("failed to resolve word source %s: %w", path, err)
	}

	set := New(minBlock)
	for _, file := range files {
		if err := readFile(set, file, minBlock); err != nil {
			return nil, err
		}
		logger.Debug("Read word list.", "path", file, "total_words", set.Len())
	}

	if set.Len() == 0 {
		return nil, fmt.Errorf("%w (min block %d, source %s)", ErrNoWords, minBlock, path)
	}
	logger.Info("Word source loaded.", "path", path, "files", len(files), "words", set.Len())
	return set, nil
}

func readFile(set *Set, path string, minBlock int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open word list %s: %w", path, err)
	}
	defer f.Close()

	if err := set.read(f, minBlock); err != nil {
		return fmt.Errorf("failed to read word list %s: %w", path, err)
	}
	return nil
}

func isAlpha(w string) bool {
	for i := 0; i < len(w); i++ {
		c := w[i]
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

func isLower(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// isUpper reports whether every letter of an alphabetic word is uppercase.
func isUpper(w string) bool {
	for i := 0; i < len(w); i++ {
		if w[i] < 'A' || w[i] > 'Z' {
			return false
		}
	}
	return true
}
