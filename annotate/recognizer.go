package annotate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	sent "github.com/revelaction/qconcept/sentence"
)

var (
	clockRe  = regexp.MustCompile(`^\d{1,2}(am|pm)$`)
	decadeRe = regexp.MustCompile(`^(1\d|20)\d0s$`)
)

var numberWords = map[string]bool{
	"one": true, "two": true, "three": true, "four": true, "five": true, "six": true,
	"seven": true, "eight": true, "nine": true, "ten": true, "eleven": true, "twelve": true,
	"twenty": true, "thirty": true, "fifty": true, "hundred": true, "thousand": true,
	"million": true, "billion": true, "dozen": true,
}

// Recognizer tags named entities from a gazetteer of phrases and from
// number, date, time and percent patterns.
type Recognizer struct {
	phrases map[string]sent.EntityTag
	maxLen  int
}

func NewRecognizer() *Recognizer {
	r := &Recognizer{phrases: map[string]sent.EntityTag{}}

	for _, m := range []string{"january", "february", "march", "april", "june", "july",
		"august", "september", "october", "november", "december", "monday", "tuesday",
		"wednesday", "thursday", "friday", "saturday", "sunday", "today", "yesterday",
		"tomorrow"} {
		r.Add(m, sent.Date)
	}
	for _, t := range []string{"noon", "midnight", "tonight"} {
		r.Add(t, sent.Time)
	}

	return r
}

// Add registers a phrase. Matching is case insensitive.
func (r *Recognizer) Add(phrase string, tag sent.EntityTag) {
	words := Tokenize(strings.ToLower(phrase))
	if len(words) == 0 {
		return
	}

	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}

	r.phrases[strings.Join(texts, " ")] = tag
	if len(texts) > r.maxLen {
		r.maxLen = len(texts)
	}
}

// Load reads gazetteer lines of the form "TAG<tab>phrase". Blank lines and
// lines starting with # are skipped.
func (r *Recognizer) Load(rd io.Reader) error {
	sc := bufio.NewScanner(rd)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		label, phrase, ok := strings.Cut(line, "\t")
		if !ok {
			return fmt.Errorf("gazetteer line %d: missing tab", n)
		}

		tag, ok := sent.ParseEntityTag(strings.ToUpper(strings.TrimSpace(label)))
		if !ok {
			return fmt.Errorf("gazetteer line %d: unknown entity tag %q", n, label)
		}

		r.Add(phrase, tag)
	}

	return sc.Err()
}

// LoadFile reads a gazetteer file, see Load.
func (r *Recognizer) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("IO error: %w", err)
	}
	defer f.Close()

	if err := r.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Recognize returns one entity tag per word.
func (r *Recognizer) Recognize(words []string) []sent.EntityTag {
	tags := make([]sent.EntityTag, len(words))
	for i := range tags {
		tags[i] = sent.Outside
	}

	lower := make([]string, len(words))
	for i, w := range words {
		lower[i] = strings.ToLower(w)
	}

	// gazetteer, longest match first
	for i := 0; i < len(words); {
		n := r.match(lower[i:])
		if n == 0 {
			i++
			continue
		}
		tag := r.phrases[strings.Join(lower[i:i+n], " ")]
		for j := i; j < i+n; j++ {
			tags[j] = tag
		}
		i += n
	}

	for i := 0; i < len(words); i++ {
		if tags[i] != sent.Outside {
			continue
		}

		w := lower[i]
		next := ""
		if i+1 < len(words) {
			next = lower[i+1]
		}

		switch {
		case clockRe.MatchString(w):
			tags[i] = sent.Time

		case decadeRe.MatchString(w):
			tags[i] = sent.Date

		case isNumeric(w) || numberWords[w]:
			switch {
			case next == "%" || next == "percent":
				tags[i], tags[i+1] = sent.Percent, sent.Percent
				i++
			case next == "am" || next == "pm" || next == "o'clock":
				tags[i], tags[i+1] = sent.Time, sent.Time
				i++
			case isYear(w):
				tags[i] = sent.Date
			case i > 0 && tags[i-1] == sent.Date && isDay(w):
				tags[i] = sent.Date
			default:
				tags[i] = sent.Number
			}
		}
	}

	return tags
}

func (r *Recognizer) match(words []string) int {
	for n := min(r.maxLen, len(words)); n > 0; n-- {
		if _, ok := r.phrases[strings.Join(words[:n], " ")]; ok {
			return n
		}
	}
	return 0
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	y, err := strconv.Atoi(s)
	return err == nil && y >= 1000 && y < 2100
}

func isDay(s string) bool {
	d, err := strconv.Atoi(s)
	return err == nil && d >= 1 && d <= 31
}
