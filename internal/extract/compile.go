package extract

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fieldsift/fieldsift/internal/model"
)

// CompiledRule is a rule with its matching patterns built once at rule-set
// load time. Anchor literals are escaped before being embedded, so anchor
// text containing pattern metacharacters cannot corrupt matching semantics.
// A CompiledRule is immutable after Compile and safe for concurrent use.
type CompiledRule struct {
	Rule      model.Rule
	MaxLength int

	// Alternatives are the rule's fallback variants, already merged over the
	// parent and compiled. Ordering follows the declaration order.
	Alternatives []*CompiledRule

	settings model.Settings
	anyType  bool

	valueRe *regexp.Regexp
	bothRe  *regexp.Regexp
	afterRe *regexp.Regexp

	wordRes []*regexp.Regexp

	directRe *regexp.Regexp
}

// Compile builds the matching patterns for a rule and its alternatives.
// Pattern errors surface here, before any document is processed; the
// evaluation path never constructs patterns at runtime.
func Compile(rule model.Rule, settings model.Settings) (*CompiledRule, error) {
	c, err := compileSingle(rule, settings)
	if err != nil {
		return nil, err
	}

	for i, alt := range rule.Alternatives {
		merged := model.MergeAlternative(rule, alt)
		ca, err := compileSingle(merged, settings)
		if err != nil {
			return nil, fmt.Errorf("rule %q alternative %d: %w", rule.Name, i+1, err)
		}
		c.Alternatives = append(c.Alternatives, ca)
	}

	return c, nil
}

// CompileSet compiles every rule in declaration order
func CompileSet(rules []model.Rule, settings model.Settings) ([]*CompiledRule, error) {
	compiled := make([]*CompiledRule, 0, len(rules))
	for _, r := range rules {
		c, err := Compile(r, settings)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, c)
	}
	return compiled, nil
}

func compileSingle(rule model.Rule, settings model.Settings) (*CompiledRule, error) {
	maxLen := rule.MaxLength
	if maxLen <= 0 {
		maxLen = settings.MaxExtractionLength
	}
	if maxLen <= 0 {
		maxLen = 100
	}

	c := &CompiledRule{
		Rule:      rule,
		MaxLength: maxLen,
		settings:  settings,
	}

	vp := ValuePattern(rule.ValueType)
	switch rule.ValueType {
	case model.ValueTypeNumber, model.ValueTypeText, model.ValueTypeBoth:
	default:
		c.anyType = true
	}

	prefix := ""
	if !rule.CaseSensitive {
		prefix = "(?i)"
	}

	// The run must begin where the candidate begins; a value-class match
	// further in would detach the value from its anchor.
	var err error
	if c.valueRe, err = regexp.Compile("^" + vp); err != nil {
		return nil, fmt.Errorf("rule %q: value pattern: %w", rule.Name, err)
	}

	if rule.BeforeText != "" && rule.AfterText != "" {
		expr := prefix + regexp.QuoteMeta(rule.BeforeText) + `\s*(` + vp + `)\s*` + regexp.QuoteMeta(rule.AfterText)
		if c.bothRe, err = regexp.Compile(expr); err != nil {
			return nil, fmt.Errorf("rule %q: anchor pattern: %w", rule.Name, err)
		}
	}

	if rule.AfterText != "" {
		expr := prefix + `(` + vp + `)\s*` + regexp.QuoteMeta(rule.AfterText)
		if c.afterRe, err = regexp.Compile(expr); err != nil {
			return nil, fmt.Errorf("rule %q: after-anchor pattern: %w", rule.Name, err)
		}
	}

	for _, word := range strings.Fields(rule.TargetSentence) {
		if len(word) <= 3 {
			continue
		}
		expr := prefix + regexp.QuoteMeta(word) + `\s*[:-]?\s*(` + vp + `)`
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: word pattern %q: %w", rule.Name, word, err)
		}
		c.wordRes = append(c.wordRes, re)
	}

	if rule.Pattern != "" {
		if c.directRe, err = regexp.Compile(prefix + rule.Pattern); err != nil {
			return nil, fmt.Errorf("rule %q: direct pattern: %w", rule.Name, err)
		}
	}

	return c, nil
}

// indexFold locates sub in text, honoring case sensitivity. It returns the
// byte offset of the match in text and the matched byte length, or -1, 0
// when absent. Folding happens rune by rune so offsets stay valid even when
// a rune's lowercase form has a different byte length.
func indexFold(text, sub string, caseSensitive bool) (int, int) {
	if caseSensitive {
		idx := strings.Index(text, sub)
		if idx < 0 {
			return -1, 0
		}
		return idx, len(sub)
	}
	for i := 0; i < len(text); {
		if n, ok := foldPrefix(text[i:], sub); ok {
			return i, n
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return -1, 0
}

// foldPrefix reports whether s begins with sub under case folding, returning
// the byte length of the matched prefix of s.
func foldPrefix(s, sub string) (int, bool) {
	n := 0
	for _, sr := range sub {
		r, size := utf8.DecodeRuneInString(s[n:])
		if size == 0 {
			return 0, false
		}
		if r != sr && unicode.ToLower(r) != unicode.ToLower(sr) {
			return 0, false
		}
		n += size
	}
	return n, true
}
