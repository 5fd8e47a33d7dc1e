package srcpatch

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/net/html"
)

var bodyOpenTag = regexp.MustCompile(`(?i)<body\b[^>]*>`)

// Inter-word gaps. Only whitespace is elastic; words match literally. The
// class holds every rune unicode.IsSpace accepts, since words are split with
// strings.Fields.
const (
	spaceClass = `[\s\x0B\x{0085}\p{Z}]`
	plainGap   = spaceClass + `+`
	entityGap  = `(?:` + spaceClass + `|&nbsp;|&#0*(?:9|10|32|160);|&#[xX]0*(?:9|[aA]|20|[aA]0);)+`
)

// namedRef matches any named character reference. Spans it lets through are
// decoded and checked against the edit's words before they count as a match.
const namedRef = `&[a-zA-Z][a-zA-Z0-9]*;`

// entityForms lists the spellings a literal character may take in markup.
var entityForms = map[rune]string{
	'&':  `&amp;|&#0*38;|&#[xX]0*26;`,
	'<':  `&lt;|&#0*60;|&#[xX]0*3[cC];`,
	'>':  `&gt;|&#0*62;|&#[xX]0*3[eE];`,
	'"':  `&quot;|&#0*34;|&#[xX]0*22;`,
	'\'': `&apos;|&#0*39;|&#[xX]0*27;`,
}

// Patcher maps edits onto a source buffer without touching anything outside
// the replaced spans.
type Patcher struct {
	// MatchEntities lets escapable characters in edit text match their
	// entity spellings in the source.
	MatchEntities bool
	// PreviewLen bounds the text previews in unmatched diagnostics.
	PreviewLen int
}

// NewPatcher returns a Patcher configured from cfg.
func NewPatcher(cfg Config) *Patcher {
	return &Patcher{MatchEntities: cfg.MatchEntities, PreviewLen: cfg.PreviewLen}
}

// Patch applies edits to source with the default configuration.
func Patch(source string, edits []Edit) *PatchResult {
	return NewPatcher(DefaultConfig()).Patch(source, edits)
}

// Patch applies edits to source in order and returns the rebuilt buffer.
//
// A cursor starts just after the opening body tag and advances past each
// replacement. Every edit is searched from the cursor first, then once more
// from the start of the body, which covers edits whose source text sits
// before an earlier one. Edits found in neither pass are reported, not
// guessed. The cursor only narrows the choice among duplicate occurrences;
// it does not prove the choice is the one the user edited.
func (p *Patcher) Patch(source string, edits []Edit) *PatchResult {
	res := &PatchResult{BaseHash: hashString(source)}

	bodyStart := bodyOffset(source)
	buf := source
	cursor := bodyStart

	var runs []string
	for _, e := range edits {
		if e.Noop() {
			u := p.unmatched(e, 0)
			u.Skipped = true
			res.Unmatched = append(res.Unmatched, u)
			continue
		}

		m := p.matcher(e.Old)
		loc := m.findFrom(buf, cursor)
		if loc == nil && cursor > bodyStart {
			loc = m.findFrom(buf, bodyStart)
		}
		if loc == nil {
			u := p.unmatched(e, m.count(buf))
			if runs == nil {
				runs = ExtractTokens(buf[bodyStart:])
			}
			u.Suggestion = suggest(e.Old, runs)
			res.Unmatched = append(res.Unmatched, u)
			continue
		}

		buf = buf[:loc[0]] + e.New + buf[loc[1]:]
		cursor = loc[0] + len(e.New)
		res.Applied++
	}

	res.HTML = buf
	return res
}

// bodyOffset returns the offset just past the opening body tag, or 0 when the
// source has none.
func bodyOffset(source string) int {
	if loc := bodyOpenTag.FindStringIndex(source); loc != nil {
		return loc[1]
	}
	return 0
}

// textMatcher finds the source spans that render as a given text.
type textMatcher struct {
	re    *regexp.Regexp
	words []string
	// decode is set when the pattern admits entity spellings. A candidate
	// span then only matches if its decoded words equal words.
	decode bool
}

// matcher turns text into a search pattern: its whitespace-delimited words in
// order, each matched literally, joined by any run of whitespace.
func (p *Patcher) matcher(text string) *textMatcher {
	words := strings.Fields(text)
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = p.literal(w)
	}
	gap := plainGap
	if p.MatchEntities {
		gap = entityGap
	}
	return &textMatcher{
		re:     regexp.MustCompile(strings.Join(parts, gap)),
		words:  words,
		decode: p.MatchEntities,
	}
}

// findFrom returns the first verified match at or after from.
func (m *textMatcher) findFrom(buf string, from int) []int {
	for from <= len(buf) {
		loc := m.re.FindStringIndex(buf[from:])
		if loc == nil {
			return nil
		}
		start, end := loc[0]+from, loc[1]+from
		if m.verify(buf[start:end]) {
			return []int{start, end}
		}
		_, size := utf8.DecodeRuneInString(buf[start:])
		from = start + max(size, 1)
	}
	return nil
}

// count returns the number of non-overlapping matches in buf.
func (m *textMatcher) count(buf string) int {
	n := 0
	for from := 0; ; n++ {
		loc := m.findFrom(buf, from)
		if loc == nil {
			return n
		}
		from = max(loc[1], loc[0]+1)
	}
}

func (m *textMatcher) verify(span string) bool {
	if !m.decode {
		return true
	}
	got := strings.Fields(html.UnescapeString(span))
	if len(got) != len(m.words) {
		return false
	}
	for i := range got {
		if got[i] != m.words[i] {
			return false
		}
	}
	return true
}

// literal quotes word for the pattern. With entity matching on, each rune
// that markup may spell as a character reference also accepts those forms.
func (p *Patcher) literal(word string) string {
	if !p.MatchEntities {
		return regexp.QuoteMeta(word)
	}
	var sb strings.Builder
	for _, r := range word {
		forms := runeForms(r)
		if forms == "" {
			sb.WriteString(regexp.QuoteMeta(string(r)))
			continue
		}
		sb.WriteString("(?:")
		sb.WriteString(regexp.QuoteMeta(string(r)))
		sb.WriteString("|")
		sb.WriteString(forms)
		sb.WriteString(")")
	}
	return sb.String()
}

// runeForms returns the entity alternatives for r, or "" when r is only ever
// written literally.
func runeForms(r rune) string {
	if forms, ok := entityForms[r]; ok {
		return forms
	}
	switch {
	case r > unicode.MaxASCII:
		return numericRef(r) + "|" + namedRef
	case unicode.IsPunct(r) || unicode.IsSymbol(r):
		return numericRef(r)
	}
	return ""
}

func numericRef(r rune) string {
	return fmt.Sprintf(`&#0*%d;|&#[xX]0*(?i:%x);`, r, r)
}

func (p *Patcher) unmatched(e Edit, candidates int) UnmatchedEdit {
	return UnmatchedEdit{
		Edit:       e,
		OldPreview: preview(e.Old, p.PreviewLen),
		NewPreview: preview(e.New, p.PreviewLen),
		Candidates: candidates,
	}
}

// suggest returns the visible text run that best contains text, or its first
// word when the whole text fits nowhere.
func suggest(text string, runs []string) string {
	ranks := fuzzy.RankFindNormalizedFold(text, runs)
	if len(ranks) == 0 {
		if words := strings.Fields(text); len(words) > 1 {
			ranks = fuzzy.RankFindNormalizedFold(words[0], runs)
		}
	}
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

func preview(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
