package noticiasagricolas

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain"
)

const page = `<html><body>
<div class="cotacao">
  <h2>Indicador do Café Arábica CEPEA/ESALQ</h2>
  <table>
    <thead><tr><th>Data</th><th>Valor R$</th></tr></thead>
    <tbody>
      <tr><td>14/10/2025</td><td>2.204,71</td><td>+1,2</td></tr>
      <tr><td>13/10/2025</td><td>2.178,30</td><td>-0,4</td></tr>
    </tbody>
  </table>
</div>
<div class="cotacao">
  <h2>Indicador do Café Robusta CEPEA/ESALQ</h2>
  <table><tbody><tr><td>14/10/2025</td><td>1.398,05</td></tr></tbody></table>
</div>
</body></html>`

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestParseQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		html      string
		variety   decision.Variety
		wantPrice float64
		wantErr   error
	}{
		{name: "arabica", html: page, variety: decision.VarietyArabica, wantPrice: 2204.71},
		{name: "robusta", html: page, variety: decision.VarietyRobusta, wantPrice: 1398.05},
		{name: "variety missing", html: `<div class="cotacao"><h2>Milho</h2><table></table></div>`, variety: decision.VarietyArabica, wantErr: domain.ErrQuoteNotFound},
		{name: "empty table body", html: `<div class="cotacao"><h2>Café Arabica</h2><table><tbody></tbody></table></div>`, variety: decision.VarietyArabica, wantErr: domain.ErrQuoteNotFound},
		{name: "block without title is skipped", html: `<div class="cotacao"><table><tbody><tr><td>01/01/2025</td><td>1,00</td></tr></tbody></table></div>`, variety: decision.VarietyRobusta, wantErr: domain.ErrQuoteNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := ParseQuote(doc(t, tt.html), tt.variety)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.variety, q.Variety)
			assert.Equal(t, time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC), q.Date)
			assert.Equal(t, tt.wantPrice, q.Price)
		})
	}
}

func TestParseQuote_BadCells(t *testing.T) {
	t.Parallel()

	_, err := ParseQuote(doc(t, `<div class="cotacao"><h2>Arábica</h2><table><tbody><tr><td>2025-10-14</td><td>1,00</td></tr></tbody></table></div>`), decision.VarietyArabica)
	assert.ErrorContains(t, err, "parse date")

	_, err = ParseQuote(doc(t, `<div class="cotacao"><h2>Arábica</h2><table><tbody><tr><td>14/10/2025</td><td>n/d</td></tr></tbody></table></div>`), decision.VarietyArabica)
	assert.ErrorContains(t, err, "parse price")
}

func TestParseBRNumber(t *testing.T) {
	t.Parallel()

	tests := map[string]float64{
		"2.204,71":     2204.71,
		"1.000.000,5":  1000000.5,
		"98,10":        98.10,
		" R$ 1.398,05": 1398.05,
		"12":           12,
	}
	for in, want := range tests {
		got, err := ParseBRNumber(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseBRNumber("abc")
	assert.Error(t, err)
}

func TestScraper_LatestQuote(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	q, err := NewScraper(server.URL, server.Client()).LatestQuote(context.Background(), decision.VarietyArabica)
	require.NoError(t, err)
	assert.Equal(t, 2204.71, q.Price)
}

func TestScraper_LatestQuote_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := NewScraper(server.URL, server.Client()).LatestQuote(context.Background(), decision.VarietyArabica)
	assert.ErrorContains(t, err, "http 403")
}
