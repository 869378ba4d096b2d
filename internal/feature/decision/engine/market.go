package engine

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"coffee_backend/internal/feature/decision/domain/entity"
)

var positiveTerms = []string{
	"sell", "rally", "growth", "appreciation", "positive", "good", "favorable",
	"vender", "alta", "crescimento", "valorização", "valorizações", "positivo", "positiva", "boa",
	"favorável", "favoráveis",
}

var negativeTerms = []string{
	"wait", "decline", "drop", "devaluation", "negative", "risk", "unfavorable",
	"aguardar", "queda", "baixa", "desvalorização", "desvalorizações", "negativo", "negativa", "risco",
	"desfavorável", "desfavoráveis",
}

// greenTerms match whole words only; "cru" would otherwise prefix "cruzeiro".
var greenTerms = map[string]struct{}{
	"green": {}, "raw": {},
	"verde": {}, "verdes": {}, "cru": {}, "crus": {}, "crua": {}, "cruas": {},
}

// matchesAny reports whether tok starts with one of words, so plurals and
// inflections ("quedas", "declines") count while "desfavorável" never counts as
// "favorável".
func matchesAny(tok string, words []string) bool {
	for _, w := range words {
		if strings.HasPrefix(tok, w) {
			return true
		}
	}
	return false
}

// ScoreMarket scores market reports by keyword polarity. An empty report list is
// not an error and yields the neutral 0.5. variety does not affect the score today.
func ScoreMarket(reports []entity.MarketReport, state entity.CoffeeState, variety entity.Variety) float64 {
	score := 0.5
	if len(reports) == 0 {
		return score
	}

	var pos, neg int
	mentionsGreen := false
	for _, tok := range tokenize(reportText(reports)) {
		if matchesAny(tok, positiveTerms) {
			pos++
		}
		if matchesAny(tok, negativeTerms) {
			neg++
		}
		if _, ok := greenTerms[tok]; ok {
			mentionsGreen = true
		}
	}

	positive := pos > neg
	switch {
	case positive:
		score += 0.3
	case neg > pos:
		score -= 0.3
	}

	if positive && state.IsProcessed() {
		score += 0.10
	}
	if positive && state == entity.StateGreen && mentionsGreen {
		score += 0.10
	}
	return clamp01(score)
}

// reportText joins report contents and their metadata into one lower-cased,
// NFC-normalized text so decomposed accents stay inside their word.
func reportText(reports []entity.MarketReport) string {
	var b strings.Builder
	for _, r := range reports {
		b.WriteString(r.Content)
		b.WriteByte(' ')
		b.WriteString(metadataString(r.Metadata))
		b.WriteByte(' ')
	}
	return norm.NFC.String(strings.ToLower(b.String()))
}

// metadataString renders metadata with sorted keys so the text is deterministic.
func metadataString(md map[string]string) string {
	if len(md) == 0 {
		return ""
	}
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, md[k]))
	}
	return strings.Join(parts, ", ")
}

func tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
}
