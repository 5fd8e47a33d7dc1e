package srcpatch

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

func hashString(s string) string {
	h := sha256.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// AlignPositional pairs two token sequences by index up to the shorter length
// and returns an Edit for every pair whose visible text differs. Pairs that
// differ only in inner whitespace are not edits.
// Note: this is NOT robust for inserted or removed elements,
// as everything after the first one pairs with the wrong token.
func AlignPositional(oldTokens, newTokens []string) []Edit {
	commonLen := len(oldTokens)
	if len(newTokens) < commonLen {
		commonLen = len(newTokens)
	}

	var edits []Edit
	for i := 0; i < commonLen; i++ {
		if collapse(oldTokens[i]) != collapse(newTokens[i]) {
			edits = append(edits, NewEdit(oldTokens[i], newTokens[i]))
		}
	}
	return edits
}

// AlignLCS aligns two token sequences on their longest common subsequence
// and pairs the tokens of each replaced run by index. Tokens that were only
// inserted or only removed produce no edit.
func AlignLCS(oldTokens, newTokens []string) []Edit {
	d := dmp.New()
	a, b, lines := d.DiffLinesToRunes(joinTokens(oldTokens), joinTokens(newTokens))
	diffs := d.DiffCharsToLines(d.DiffMainRunes(a, b, false), lines)

	var edits []Edit
	oi, ni := 0, 0
	delFrom, insFrom := 0, 0
	flush := func() {
		edits = append(edits, AlignPositional(oldTokens[delFrom:oi], newTokens[insFrom:ni])...)
		delFrom, insFrom = oi, ni
	}
	for _, df := range diffs {
		n := strings.Count(df.Text, "\n")
		switch df.Type {
		case dmp.DiffDelete:
			oi += n
		case dmp.DiffInsert:
			ni += n
		case dmp.DiffEqual:
			flush()
			oi += n
			ni += n
			delFrom, insFrom = oi, ni
		}
	}
	flush()
	return edits
}

// joinTokens puts one token per line so the line-mode diff compares whole
// tokens. Inner newlines are collapsed first.
func joinTokens(tokens []string) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.WriteString(collapse(t))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
