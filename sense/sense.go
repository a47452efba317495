// Package sense holds the lexical ontology entries consumed by depth
// scoring.
package sense

import (
	"strings"
)

// Category is the syntactic category of a sense.
type Category string

const (
	Noun Category = "n"
)

// Entry is a node of the hypernym hierarchy.
type Entry struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`

	// Lemmas of the sense, underscore separated. The first is canonical.
	Words []string `json:"words"`

	// Ordered target sense IDs.
	Hypernyms         []string `json:"hypernyms,omitempty"`
	InstanceHypernyms []string `json:"instance_hypernyms,omitempty"`

	Gloss string `json:"gloss,omitempty"`
}

// Parent returns the sense the depth walk follows from e: the first
// hypernym, else the first instance hypernym.
func (e Entry) Parent() (string, bool) {
	if len(e.Hypernyms) > 0 {
		return e.Hypernyms[0], true
	}
	if len(e.InstanceHypernyms) > 0 {
		return e.InstanceHypernyms[0], true
	}
	return "", false
}

// Key returns the lookup form of a surface string: lower case, runs of
// whitespace replaced by a single underscore.
func Key(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// noun suffix detachment rules, in WordNet order
var nounRules = []struct {
	suffix, ending string
}{
	{"s", ""},
	{"ses", "s"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// BaseForms returns the candidate noun base forms of key, not including key
// itself. Only the last word of a collocation is inflected.
func BaseForms(key string) []string {
	head, last := "", key
	if i := strings.LastIndex(key, "_"); i >= 0 {
		head, last = key[:i+1], key[i+1:]
	}

	if strings.HasSuffix(last, "ss") {
		return nil
	}

	var forms []string
	seen := map[string]bool{key: true}
	for _, r := range nounRules {
		if !strings.HasSuffix(last, r.suffix) || len(last) <= len(r.suffix) {
			continue
		}

		f := head + strings.TrimSuffix(last, r.suffix) + r.ending
		if seen[f] {
			continue
		}
		seen[f] = true
		forms = append(forms, f)
	}

	return forms
}
