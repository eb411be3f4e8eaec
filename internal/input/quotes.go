package input

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/yourusername/odds-apex/internal/models"
)

// RawQuote is a quote as typed by the user
type RawQuote struct {
	Market string `json:"market" mapstructure:"market"`
	Price  string `json:"price" mapstructure:"price"`
}

// ParseQuotes converts raw quotes into market quotes in the same order.
// Prices may be decimal ("2.5") or fractional ("3/2"); an empty price means
// the market is not offered.
func ParseQuotes(raw []RawQuote) ([]models.MarketQuote, error) {
	verr := &ValidationError{}
	quotes := make([]models.MarketQuote, 0, len(raw))
	for _, rq := range raw {
		spec, err := models.ParseMarket(rq.Market)
		if err != nil {
			verr.add(rq.Market, rq.Price, "unknown market")
			verr.unknownMarket = true
			continue
		}
		price, reason := parsePrice(rq.Price)
		if reason != "" {
			verr.add(string(spec.Market), rq.Price, reason)
			continue
		}
		quotes = append(quotes, models.MarketQuote{Market: spec.Market, Price: price})
	}
	if err := verr.errOrNil(); err != nil {
		return nil, err
	}
	return quotes, nil
}

// QuotesFromMap orders a market-to-price map as match odds, next goal, then
// goal lines ascending with over before under
func QuotesFromMap(fields map[string]string) []RawQuote {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return quoteRank(names[i]) < quoteRank(names[j]) ||
			(quoteRank(names[i]) == quoteRank(names[j]) && names[i] < names[j])
	})

	raw := make([]RawQuote, 0, len(names))
	for _, name := range names {
		raw = append(raw, RawQuote{Market: name, Price: fields[name]})
	}
	return raw
}

func quoteRank(name string) float64 {
	spec, err := models.ParseMarket(name)
	if err != nil {
		return 1000
	}
	switch spec.Market {
	case models.MarketHome:
		return 0
	case models.MarketDraw:
		return 1
	case models.MarketAway:
		return 2
	case models.MarketNextGoal:
		return 3
	}
	rank := 4 + spec.Line*2
	if spec.Kind == models.MarketKindUnder {
		rank += 0.5
	}
	return rank
}

func parsePrice(raw string) (float64, string) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ""
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, errN := decimal.NewFromString(strings.TrimSpace(num))
		d, errD := decimal.NewFromString(strings.TrimSpace(den))
		if errN != nil || errD != nil || !d.IsPositive() || n.IsNegative() {
			return 0, "not a fractional price"
		}
		return n.Div(d).Add(decimal.NewFromInt(1)).InexactFloat64(), ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, "not a number"
	}
	return d.InexactFloat64(), ""
}

// ParsePrice parses a single live price typed into the named field. An empty
// price parses as 0, meaning not offered.
func ParsePrice(field, raw string) (float64, error) {
	price, reason := parsePrice(raw)
	if reason != "" {
		verr := &ValidationError{}
		verr.add(field, raw, reason)
		return 0, verr
	}
	return price, nil
}
