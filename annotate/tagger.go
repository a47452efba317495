package annotate

import (
	"strings"
	"unicode"
)

// Tagger assigns Penn Treebank tags from a closed-class lexicon, suffix
// heuristics and a few contextual corrections.
type Tagger struct {
	lexicon map[string]string
}

func NewTagger() *Tagger {
	t := &Tagger{lexicon: map[string]string{}}
	t.loadDefaultLexicon()
	return t
}

// Add registers or overrides the tag of a lower case word.
func (t *Tagger) Add(word, tag string) {
	t.lexicon[strings.ToLower(word)] = tag
}

// Tag returns one tag per word.
func (t *Tagger) Tag(words []string) []string {
	tags := make([]string, len(words))
	known := make([]bool, len(words))

	for i, w := range words {
		tags[i], known[i] = t.baseline(w)
	}

	for i := 1; i < len(tags); i++ {
		prev := tags[i-1]

		// "the [run]", "a long [walk]"
		if (prev == "DT" || prev == "PRP$" || strings.HasPrefix(prev, "JJ")) && !known[i] && isVerbTag(tags[i]) {
			tags[i] = "NN"
			continue
		}

		// "can [cook]", "want to [cook]"
		if (prev == "MD" || prev == "TO") && strings.HasPrefix(tags[i], "NN") && tags[i] != "NNP" {
			tags[i] = "VB"
			continue
		}

		// "did [invent]"
		if isDo(words[i-1]) && strings.HasPrefix(tags[i], "NN") && tags[i] != "NNP" {
			tags[i] = "VB"
		}
	}

	return tags
}

func (t *Tagger) baseline(word string) (string, bool) {
	lower := strings.ToLower(word)
	if tag, ok := t.lexicon[lower]; ok {
		return tag, true
	}
	return inferTag(word), false
}

func inferTag(word string) string {
	if isPunct(word) {
		switch word {
		case ".", "?", "!", "…":
			return "."
		case ",":
			return ","
		case ":", ";", "-", "--":
			return ":"
		case "$", "€", "£":
			return "$"
		case "(", "[", "{":
			return "-LRB-"
		case ")", "]", "}":
			return "-RRB-"
		case "\"", "'", "“", "”", "‘", "’":
			return "''"
		}
		return "SYM"
	}

	if isNumeric(word) {
		return "CD"
	}

	if r := []rune(word); unicode.IsUpper(r[0]) {
		return "NNP"
	}

	lower := strings.ToLower(word)
	switch {
	case strings.HasSuffix(lower, "ly"):
		return "RB"
	case strings.HasSuffix(lower, "ing"):
		return "VBG"
	case strings.HasSuffix(lower, "ed"):
		return "VBD"
	case hasAnySuffix(lower, "ness", "tion", "sion", "ment", "ity", "ship", "ism", "ist", "er", "or", "ance", "ence"):
		return "NN"
	case hasAnySuffix(lower, "ful", "less", "ous", "ive", "able", "ible", "al", "ic", "ish", "ary"):
		return "JJ"
	case hasAnySuffix(lower, "est"):
		return "JJS"
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss") && len(lower) > 3:
		return "NNS"
	}

	return "NN"
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) && len(s) > len(suf)+1 {
			return true
		}
	}
	return false
}

func isVerbTag(tag string) bool {
	return strings.HasPrefix(tag, "VB")
}

func isDo(s string) bool {
	switch strings.ToLower(s) {
	case "do", "does", "did":
		return true
	}
	return false
}

func isNumeric(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

func (t *Tagger) loadDefaultLexicon() {
	add := func(tag string, words ...string) {
		for _, w := range words {
			t.lexicon[w] = tag
		}
	}

	add("DT", "the", "a", "an", "this", "that", "these", "those", "some", "any", "no", "every",
		"each", "all", "both", "either", "neither", "another")
	add("PRP$", "my", "your", "his", "her", "its", "our", "their")
	add("PRP", "i", "you", "he", "she", "it", "we", "they", "me", "him", "us", "them",
		"myself", "yourself", "himself", "herself", "itself", "ourselves", "themselves")
	add("IN", "in", "on", "at", "for", "with", "by", "from", "of", "about", "into", "through",
		"during", "before", "after", "above", "below", "between", "under", "over", "against",
		"among", "around", "behind", "beside", "beyond", "near", "toward", "towards", "upon",
		"within", "without", "across", "along", "inside", "outside", "throughout", "since",
		"until", "than", "because", "although", "while", "if", "unless", "whether", "as", "like")
	add("TO", "to")
	add("CC", "and", "or", "but", "nor", "yet", "so")
	add("MD", "can", "could", "will", "would", "shall", "should", "may", "might", "must")
	add("WP", "what", "who", "whom")
	add("WP$", "whose")
	add("WDT", "which")
	add("WRB", "where", "when", "why", "how")
	add("EX", "there")
	add("RB", "not", "n't", "very", "quite", "rather", "really", "too", "just", "only", "also",
		"now", "then", "here", "always", "never", "often", "sometimes", "already", "still",
		"even", "ever", "ago", "first")
	add("RBS", "most")
	add("RBR", "more")
	add("JJS", "largest", "biggest", "highest", "longest", "smallest", "oldest", "best", "tallest", "deepest")
	add("JJR", "larger", "bigger", "higher", "longer", "smaller", "older", "better", "taller", "deeper")
	add("JJ", "old", "new", "good", "bad", "great", "small", "large", "big", "little", "young",
		"long", "short", "high", "low", "early", "late", "last", "ancient", "famous", "many",
		"much", "few", "other", "same", "different", "main", "official", "national", "black",
		"white", "red", "blue", "green", "former")
	add("VBZ", "is", "has", "does")
	add("VBP", "are", "have", "do", "am")
	add("VBD", "was", "were", "had", "did", "went", "came", "said", "saw", "knew", "took", "got",
		"made", "ran", "spoke", "fought", "won", "wrote", "became", "began", "built", "found",
		"gave", "led", "left", "lost", "met", "paid", "sold", "told", "thought", "invented",
		"discovered", "founded", "died", "killed", "painted", "played", "married")
	add("VBN", "been", "born", "gone", "seen", "known", "taken", "given", "written", "spoken",
		"done", "located", "called", "named", "used", "held")
	add("VB", "be", "go", "come", "say", "see", "know", "take", "get", "make", "live", "speak",
		"win", "write", "become", "begin", "build", "find", "give", "lead", "leave", "lose", "meet",
		"pay", "sell", "tell", "think", "invent", "discover", "die", "kill", "paint",
		"play", "marry", "name", "use", "hold", "mean")
	add("VBG", "being", "having", "doing", "going")
	add("NN", "capital", "city", "country", "population", "president", "year", "name",
		"company", "river", "mountain", "language", "currency", "war", "man", "woman", "time",
		"world", "state", "part", "number", "day", "place", "percent", "water")
	add("NNS", "people", "years", "countries", "cities", "states", "languages", "rivers")
	add(".", ".", "?", "!")
	add("POS", "'s")
}
