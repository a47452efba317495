package file

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/revelaction/qconcept/annotate"
)

// Default corpus paths of the eval and stat commands.
const (
	QuestionsFile = "./corpus/questions.txt"
	ConceptsFile  = "./corpus/concepts.txt"
)

// ReadLines returns the normalized lines of r. A trailing newline does not
// add an empty line; empty lines elsewhere are kept so that line numbers of
// paired files stay aligned.
func ReadLines(r io.Reader) ([]string, error) {
	lines := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, annotate.Normalize(scanner.Text()))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// ReadQuestions reads one question per line.
func ReadQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return lines, nil
}

// ReadConcepts reads one comma separated list of concepts per line.
func ReadConcepts(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	concepts := make([][]string, len(lines))
	for i, line := range lines {
		concepts[i] = SplitConcepts(line)
	}

	return concepts, nil
}

// SplitConcepts splits a line on commas, trimming and dropping empty items.
func SplitConcepts(line string) []string {
	cs := []string{}
	for _, c := range strings.Split(line, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cs = append(cs, c)
		}
	}
	return cs
}
