package extract

import (
	"fmt"
	"strings"

	"github.com/revelaction/qconcept/annotate"
	"github.com/revelaction/qconcept/depth"
	"github.com/revelaction/qconcept/storage"
)

// Policy names an extraction policy.
type Policy string

const (
	PolicyNE     Policy = "ner"
	PolicyDepth  Policy = "wordnet"
	PolicyHybrid Policy = "hybrid"
)

// Policies returns all policies in report order.
func Policies() []Policy {
	return []Policy{PolicyNE, PolicyDepth, PolicyHybrid}
}

// Label returns the report name of the policy.
func (p Policy) Label() string {
	switch p {
	case PolicyNE:
		return "NER"
	case PolicyDepth:
		return "WordNet"
	case PolicyHybrid:
		return "Hybrid"
	}
	return string(p)
}

// Description is a one line help text.
func (p Policy) Description() string {
	switch p {
	case PolicyNE:
		return "named entities are concepts"
	case PolicyDepth:
		return "words deep in the noun hierarchy are concepts"
	case PolicyHybrid:
		return "entity and POS groups, then hierarchy depth"
	}
	return ""
}

// ParsePolicy accepts a policy name or label, case insensitive.
func ParsePolicy(s string) (Policy, error) {
	for _, p := range Policies() {
		if strings.EqualFold(s, string(p)) || strings.EqualFold(s, p.Label()) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown policy %q", s)
}

// New builds the extractor of a policy. senses may be nil for PolicyNE.
func New(p Policy, ann annotate.Annotator, senses storage.SenseReader, opts ...Option) (Extractor, error) {
	if ann == nil {
		return nil, fmt.Errorf("policy %s: no annotator", p)
	}

	if p == PolicyNE {
		return NewNE(ann, opts...), nil
	}

	if senses == nil {
		return nil, fmt.Errorf("policy %s: no ontology", p)
	}

	switch p {
	case PolicyDepth:
		return NewDepth(ann, depth.NewScorer(senses), opts...), nil
	case PolicyHybrid:
		return NewHybrid(ann, depth.NewScorer(senses), opts...), nil
	}

	return nil, fmt.Errorf("unknown policy %q", p)
}
