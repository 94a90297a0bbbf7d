// Package classification assigns materials to coarse material-type categories
// using ordered keyword rules.
package classification

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Veraticus/lifecycle-profiles/internal/model"
)

// ErrNoRules is returned when a classifier is built without any rules.
var ErrNoRules = errors.New("no classification rules")

// Rule maps a keyword pattern to the category it implies.
type Rule struct {
	Category model.Category
	Pattern  string
}

// compiledRule holds a compiled regex alongside its rule.
type compiledRule struct {
	regex *regexp.Regexp
	Rule
}

// Classifier evaluates rules in the order given; the first match wins.
// It is immutable once built and safe for concurrent use.
type Classifier struct {
	rules    []compiledRule
	fallback model.Category
}

// NewClassifier compiles rules without reordering them.
func NewClassifier(rules []Rule, fallback model.Category) (*Classifier, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	if !fallback.Valid() {
		return nil, fmt.Errorf("fallback: %w: %q", model.ErrUnknownCategory, fallback)
	}

	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		if !r.Category.Valid() {
			return nil, fmt.Errorf("rule %d: %w: %q", i, model.ErrUnknownCategory, r.Category)
		}

		regexStr := r.Pattern
		if !strings.HasPrefix(regexStr, "(?i)") {
			regexStr = "(?i)" + regexStr
		}

		regex, err := regexp.Compile(regexStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for %s: %w", r.Category, err)
		}

		compiled = append(compiled, compiledRule{
			Rule:  r,
			regex: regex,
		})
	}

	return &Classifier{
		rules:    compiled,
		fallback: fallback,
	}, nil
}

// NewDefaultClassifier builds a classifier from DefaultRules and DefaultCategory.
func NewDefaultClassifier() (*Classifier, error) {
	return NewClassifier(DefaultRules(), DefaultCategory)
}

// Match describes why a material landed in its category.
type Match struct {
	Category  model.Category
	Term      string
	RuleIndex int
	Fallback  bool
}

// Explain classifies and reports the rule and term that decided it.
// RuleIndex is -1 when the fallback category was used.
func (c *Classifier) Explain(name, description string, keywords []string) Match {
	text := model.SearchText(name, description, keywords)

	for i, rule := range c.rules {
		if term := rule.regex.FindString(text); term != "" {
			return Match{
				Category:  rule.Category,
				Term:      term,
				RuleIndex: i,
			}
		}
	}

	return Match{
		Category:  c.fallback,
		RuleIndex: -1,
		Fallback:  true,
	}
}

// Classify returns the category for the given material fields. It never fails.
func (c *Classifier) Classify(name, description string, keywords []string) model.Category {
	return c.Explain(name, description, keywords).Category
}

// ClassifyMaterial classifies a material record.
func (c *Classifier) ClassifyMaterial(m model.Material) model.Category {
	return c.Classify(m.Name, m.Description, m.Keywords)
}

// ClassifyBatch classifies materials keyed by ID.
func (c *Classifier) ClassifyBatch(ctx context.Context, materials []model.Material) (map[string]model.Category, error) {
	results := make(map[string]model.Category, len(materials))

	for _, m := range materials {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			results[m.ID] = c.ClassifyMaterial(m)
		}
	}

	return results, nil
}

// Categories returns every category Classify can produce, in rule order,
// followed by the fallback if no rule already yields it.
func (c *Classifier) Categories() []model.Category {
	seen := make(map[model.Category]bool, len(c.rules)+1)
	out := make([]model.Category, 0, len(c.rules)+1)
	for _, r := range c.rules {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	if !seen[c.fallback] {
		out = append(out, c.fallback)
	}
	return out
}

// Rules returns a copy of the rules in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.Rule
	}
	return out
}

// Fallback returns the category used when nothing matches.
func (c *Classifier) Fallback() model.Category {
	return c.fallback
}
