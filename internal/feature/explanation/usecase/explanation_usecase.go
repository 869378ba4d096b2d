// Package usecase writes the natural-language explanation of a decision that the
// engine has already taken. The language model only words the justification; its
// output never changes the verdict.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/decision/engine"
)

const (
	DefaultTimeout = 20 * time.Second
	// maxPlainText caps a model answer that is not JSON.
	maxPlainText = 500
	// reportExcerpt is how much of each report goes into the prompt.
	reportExcerpt = 200
	maxReports    = 3
)

// TextGenerator sends a prompt to a language model.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Source tells whether an explanation came from the model or the template.
type Source string

const (
	SourceModel    Source = "model"
	SourceTemplate Source = "template"
)

type Explanation struct {
	Text   string
	Source Source
}

// Request is a finished assessment together with the inputs it was computed from.
type Request struct {
	Input      engine.Input
	City       string
	State      string
	Assessment decision.Assessment
}

type Explainer struct {
	gen     TextGenerator
	timeout time.Duration
}

// NewExplainer creates an Explainer. A nil gen always uses the template.
func NewExplainer(gen TextGenerator, timeout time.Duration) *Explainer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Explainer{gen: gen, timeout: timeout}
}

// Explain never fails: any model error, timeout or empty answer falls back to the template.
func (e *Explainer) Explain(ctx context.Context, req Request) Explanation {
	if e.gen == nil {
		return Explanation{Text: Fallback(req.Assessment), Source: SourceTemplate}
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	raw, err := e.gen.Generate(ctx, BuildPrompt(req))
	if err != nil {
		slog.Warn("explanation generation failed", "error", err, "elapsed", time.Since(start))
		return Explanation{Text: Fallback(req.Assessment), Source: SourceTemplate}
	}
	text, ok := ParseExplanation(raw)
	if !ok {
		slog.Warn("explanation empty, using template", "elapsed", time.Since(start))
		return Explanation{Text: Fallback(req.Assessment), Source: SourceTemplate}
	}
	slog.Info("explanation generated", "elapsed", time.Since(start), "verdict", req.Assessment.Decision.Verdict)
	return Explanation{Text: text, Source: SourceModel}
}

// BuildPrompt states the decision as final and gives the model every number behind it.
func BuildPrompt(req Request) string {
	a := req.Assessment
	in := req.Input

	var b strings.Builder
	b.WriteString("Você é um especialista em comercialização de café. A decisão abaixo JÁ FOI TOMADA por um modelo de pontuação e não pode ser alterada. ")
	b.WriteString("Explique ao produtor, em português e em até 200 palavras, por que ela faz sentido.\n\n")

	fmt.Fprintf(&b, "Decisão: %s\n", verdictLabel(a.Decision.Verdict))
	fmt.Fprintf(&b, "Pontuação final: %.3f (limiar de venda %.2f)\n", a.Decision.Score, engine.SellThreshold)
	fmt.Fprintf(&b, "Clima: %.3f (peso %.2f)\n", a.Scores.Climate, engine.ClimateWeight)
	fmt.Fprintf(&b, "Preço: %.3f (peso %.2f)\n", a.Scores.Price, engine.PriceWeight)
	fmt.Fprintf(&b, "Mercado: %.3f (peso %.2f)\n\n", a.Scores.Market, engine.MarketWeight)

	fmt.Fprintf(&b, "Tipo de café: %s\nEstado do café: %s\nData de colheita: %s\n", in.Variety, in.State, in.HarvestDate)
	if req.City != "" {
		fmt.Fprintf(&b, "Localidade: %s-%s\n", req.City, req.State)
	}
	fmt.Fprintf(&b, "Quantidade: %.0f sacas\n\n", in.Price.QuantitySacks)

	fmt.Fprintf(&b, "Clima previsto: %s\n\n", compactJSON(in.Climate))
	fmt.Fprintf(&b, "Preços: %s\n\n", compactJSON(in.Price))

	if len(in.Reports) > 0 {
		b.WriteString("Trechos de relatórios de mercado:\n")
		for i, r := range in.Reports {
			if i == maxReports {
				break
			}
			fmt.Fprintf(&b, "- %s\n", excerpt(r.Content, reportExcerpt))
		}
		b.WriteString("\n")
	}

	b.WriteString(`Responda APENAS com JSON válido no formato {"decision": "vender|aguardar", "explanation": "..."}.`)
	return b.String()
}

// ParseExplanation pulls "explanation" out of the model answer. Code fences and
// text around the JSON object are tolerated; the model's "decision" is ignored.
// A non-JSON answer is used as-is, truncated.
func ParseExplanation(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		obj := raw[start : end+1]
		if gjson.Valid(obj) {
			text := strings.TrimSpace(gjson.Get(obj, "explanation").String())
			return text, text != ""
		}
	}
	return excerpt(raw, maxPlainText), true
}

// Fallback is the templated explanation used when the model is unavailable.
func Fallback(a decision.Assessment) string {
	s := a.Scores
	return fmt.Sprintf(
		"Recomendação: %s. Pontuação final %.3f (limiar %.2f), composta por clima %.2f, preço %.2f e mercado %.2f. %s",
		verdictLabel(a.Decision.Verdict), a.Decision.Score, engine.SellThreshold,
		s.Climate, s.Price, s.Market, strongest(s),
	)
}

func strongest(s decision.ScoreTriple) string {
	name, v := "clima", s.Climate
	if s.Price > v {
		name, v = "preço", s.Price
	}
	if s.Market > v {
		name, v = "mercado", s.Market
	}
	return fmt.Sprintf("O fator mais favorável à venda é %s (%.2f).", name, v)
}

func verdictLabel(v decision.Verdict) string {
	if v == decision.VerdictSell {
		return "VENDER"
	}
	return "AGUARDAR"
}

func compactJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
