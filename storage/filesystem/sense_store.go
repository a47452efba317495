// Package filesystem reads a WordNet database file (WNDB) dictionary
// directory.
package filesystem

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/revelaction/qconcept/sense"
	"github.com/revelaction/qconcept/storage"
)

const (
	IndexFile     = "index.noun"
	DataFile      = "data.noun"
	ExceptionFile = "noun.exc"

	hypernym         = "@"
	instanceHypernym = "@i"

	maxLine = 1 << 20
)

type SenseStore struct {
	dir string

	// lemma -> synset offsets, in sense order
	index map[string][]int64

	// inflected form -> base forms
	exc map[string][]string

	data *os.File
	size int64
}

var _ storage.SenseRepository = (*SenseStore)(nil)
var _ storage.SenseWalker = (*SenseStore)(nil)

// NewSenseStore loads the noun index of the dictionary in dir and opens its
// data file. The exception list is optional.
func NewSenseStore(dir string) (*SenseStore, error) {
	index, err := readIndex(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, err
	}

	exc, err := readExceptions(filepath.Join(dir, ExceptionFile))
	if err != nil {
		return nil, err
	}

	data, err := os.Open(filepath.Join(dir, DataFile))
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	info, err := data.Stat()
	if err != nil {
		data.Close()
		return nil, fmt.Errorf("IO error: %w", err)
	}

	return &SenseStore{
		dir:   dir,
		index: index,
		exc:   exc,
		data:  data,
		size:  info.Size(),
	}, nil
}

func (s *SenseStore) Close() error {
	return s.data.Close()
}

// Lookup returns the senses of lemma. When the lemma is not in the index
// its exception base forms are tried.
func (s *SenseStore) Lookup(ctx context.Context, lemma string, cat sense.Category) ([]sense.Entry, error) {
	if cat != sense.Noun {
		return nil, nil
	}

	offsets := s.index[lemma]
	if len(offsets) == 0 {
		for _, base := range s.exc[lemma] {
			offsets = append(offsets, s.index[base]...)
		}
	}

	entries := make([]sense.Entry, 0, len(offsets))
	for _, off := range offsets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e, err := s.readAt(off)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (s *SenseStore) Read(ctx context.Context, id string) (sense.Entry, error) {
	off, err := parseID(id)
	if err != nil {
		return sense.Entry{}, err
	}
	return s.readAt(off)
}

func (s *SenseStore) Write(ctx context.Context, e sense.Entry) error {
	return fmt.Errorf("read-only storage")
}

func (s *SenseStore) Count(ctx context.Context, cat sense.Category) (int, error) {
	n := 0
	err := s.Walk(ctx, cat, func(sense.Entry) error {
		n++
		return nil
	})
	return n, err
}

// Walk scans the data file in offset order.
func (s *SenseStore) Walk(ctx context.Context, cat sense.Category, fn func(sense.Entry) error) error {
	if cat != sense.Noun {
		return nil
	}

	sc := bufio.NewScanner(io.NewSectionReader(s.data, 0, s.size))
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		line := sc.Text()
		if isHeader(line) {
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		e, err := parseData(line)
		if err != nil {
			return err
		}

		if err := fn(e); err != nil {
			return err
		}
	}

	return sc.Err()
}

func (s *SenseStore) readAt(off int64) (sense.Entry, error) {
	if off < 0 || off >= s.size {
		return sense.Entry{}, fmt.Errorf("%w: offset %d", storage.ErrNotFound, off)
	}

	r := bufio.NewReader(io.NewSectionReader(s.data, off, s.size-off))
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return sense.Entry{}, fmt.Errorf("IO error: %w", err)
	}

	e, err := parseData(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return sense.Entry{}, err
	}

	if want := ID(off); e.ID != want {
		return sense.Entry{}, fmt.Errorf("%w: offset %d holds %s", storage.ErrNotFound, off, e.ID)
	}

	return e, nil
}

// ID returns the sense ID of the noun synset at the given data file offset.
func ID(off int64) string {
	return fmt.Sprintf("%s%08d", sense.Noun, off)
}

func parseID(id string) (int64, error) {
	if !strings.HasPrefix(id, string(sense.Noun)) {
		return 0, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}

	off, err := strconv.ParseInt(id[len(sense.Noun):], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return off, nil
}

// license lines at the top of every WNDB file start with spaces
func isHeader(line string) bool {
	return line == "" || strings.HasPrefix(line, " ")
}

// parseData parses a data file line:
//
//	offset lex_filenum ss_type w_cnt word lex_id [word lex_id...] p_cnt [ptr...] | gloss
func parseData(line string) (sense.Entry, error) {
	body, gloss, _ := strings.Cut(line, " | ")
	f := strings.Fields(body)
	if len(f) < 4 {
		return sense.Entry{}, fmt.Errorf("malformed data line: %q", line)
	}

	off, err := strconv.ParseInt(f[0], 10, 64)
	if err != nil {
		return sense.Entry{}, fmt.Errorf("malformed synset offset %q: %w", f[0], err)
	}

	wcnt, err := strconv.ParseInt(f[3], 16, 32)
	if err != nil {
		return sense.Entry{}, fmt.Errorf("malformed word count %q: %w", f[3], err)
	}

	e := sense.Entry{
		ID:       ID(off),
		Category: sense.Noun,
		Gloss:    strings.TrimSpace(gloss),
	}

	pos := 4
	for i := 0; i < int(wcnt); i++ {
		if pos+1 >= len(f) {
			return sense.Entry{}, fmt.Errorf("malformed data line %s: words", e.ID)
		}
		word, _, _ := strings.Cut(f[pos], "(")
		e.Words = append(e.Words, word)
		pos += 2
	}

	if pos >= len(f) {
		return sense.Entry{}, fmt.Errorf("malformed data line %s: pointer count", e.ID)
	}
	pcnt, err := strconv.Atoi(f[pos])
	if err != nil {
		return sense.Entry{}, fmt.Errorf("malformed pointer count %q: %w", f[pos], err)
	}
	pos++

	for i := 0; i < pcnt; i++ {
		if pos+3 >= len(f) {
			return sense.Entry{}, fmt.Errorf("malformed data line %s: pointers", e.ID)
		}
		symbol, target, tpos := f[pos], f[pos+1], f[pos+2]
		pos += 4

		if tpos != string(sense.Noun) {
			continue
		}

		switch symbol {
		case hypernym:
			e.Hypernyms = append(e.Hypernyms, string(sense.Noun)+target)
		case instanceHypernym:
			e.InstanceHypernyms = append(e.InstanceHypernyms, string(sense.Noun)+target)
		}
	}

	return e, nil
}

// readIndex reads an index file:
//
//	lemma pos synset_cnt p_cnt [ptr_symbol...] sense_cnt tagsense_cnt synset_offset...
func readIndex(path string) (map[string][]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	index := map[string][]int64{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		line := sc.Text()
		if isHeader(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			return nil, fmt.Errorf("malformed index line: %q", line)
		}

		n, err := strconv.Atoi(fields[2])
		if err != nil || n > len(fields)-3 {
			return nil, fmt.Errorf("malformed index line: %q", line)
		}

		offsets := make([]int64, 0, n)
		for _, o := range fields[len(fields)-n:] {
			off, err := strconv.ParseInt(o, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed index offset %q: %w", o, err)
			}
			offsets = append(offsets, off)
		}

		index[fields[0]] = offsets
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	return index, nil
}

// readExceptions reads an exception list: an inflected form followed by
// its base forms. A missing file yields an empty list.
func readExceptions(path string) (map[string][]string, error) {
	exc := map[string][]string{}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return exc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		exc[fields[0]] = append(exc[fields[0]], fields[1:]...)
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	return exc, nil
}
