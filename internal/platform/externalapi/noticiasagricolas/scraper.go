// Package noticiasagricolas scrapes daily coffee quotations from the Notícias Agrícolas
// quotation page.
package noticiasagricolas

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	decision "coffee_backend/internal/feature/decision/domain/entity"
	"coffee_backend/internal/feature/prices/domain"
	"coffee_backend/internal/feature/prices/domain/entity"
	"coffee_backend/internal/feature/prices/usecase"
)

const (
	userAgent  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	dateLayout = "02/01/2006"
)

// Doer sends HTTP requests; *http.Client and the breaker client both satisfy it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Scraper reads the latest quote per variety from the quotation page.
type Scraper struct {
	pageURL string
	client  Doer
}

var _ usecase.QuoteSource = (*Scraper)(nil)

func NewScraper(pageURL string, client Doer) *Scraper {
	return &Scraper{pageURL: pageURL, client: client}
}

// LatestQuote downloads the page and returns the first row of the variety's table.
func (s *Scraper) LatestQuote(ctx context.Context, variety decision.Variety) (entity.Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.pageURL, nil)
	if err != nil {
		return entity.Quote{}, err
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := s.client.Do(req)
	if err != nil {
		return entity.Quote{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.Quote{}, fmt.Errorf("quotation page http %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse quotation page: %w", err)
	}
	return ParseQuote(doc, variety)
}

// ParseQuote finds the div.cotacao block whose h2 title names the variety and
// reads date and price from the first row of its table body.
func ParseQuote(doc *goquery.Document, variety decision.Variety) (entity.Quote, error) {
	var table *goquery.Selection
	doc.Find("div.cotacao").EachWithBreak(func(_ int, block *goquery.Selection) bool {
		title := block.Find("h2").First()
		if title.Length() == 0 {
			return true
		}
		if titleMatches(strings.ToLower(strings.TrimSpace(title.Text())), variety) {
			table = block.Find("table").First()
			return false
		}
		return true
	})
	if table == nil || table.Length() == 0 {
		return entity.Quote{}, fmt.Errorf("%w: %s", domain.ErrQuoteNotFound, variety)
	}

	cells := table.Find("tbody tr").First().Find("td")
	if cells.Length() < 2 {
		return entity.Quote{}, fmt.Errorf("%w: %s table has no data row", domain.ErrQuoteNotFound, variety)
	}

	dateText := strings.TrimSpace(cells.Eq(0).Text())
	date, err := time.Parse(dateLayout, dateText)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse date %q: %w", dateText, err)
	}
	priceText := strings.TrimSpace(cells.Eq(1).Text())
	price, err := ParseBRNumber(priceText)
	if err != nil {
		return entity.Quote{}, fmt.Errorf("parse price %q: %w", priceText, err)
	}

	return entity.Quote{Variety: variety, Date: date, Price: price}, nil
}

func titleMatches(title string, variety decision.Variety) bool {
	switch variety {
	case decision.VarietyArabica:
		return strings.Contains(title, "arábica") || strings.Contains(title, "arabica")
	case decision.VarietyRobusta:
		return strings.Contains(title, "robusta") || strings.Contains(title, "conilon")
	}
	return false
}

// ParseBRNumber parses Brazilian formatted numbers such as "2.204,71".
func ParseBRNumber(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(s, 64)
}
