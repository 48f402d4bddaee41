// Package parser turns a query string into the two keywords of an OR search.
package parser

import (
	"net/http"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/little-search-engine/pkg/errors"
)

// QueryPlan names the two keywords of a "first OR second" search. The
// keywords are taken verbatim; the index only matches lower-case keywords.
type QueryPlan struct {
	First    string
	Second   string
	RawQuery string
}

// Keywords returns the keywords in priority order.
func (p *QueryPlan) Keywords() []string {
	return []string{p.First, p.Second}
}

// String renders the plan in its canonical "first OR second" form.
func (p *QueryPlan) String() string {
	return p.First + " OR " + p.Second
}

// Parse accepts "kw1 OR kw2" (any case of OR) or "kw1 kw2".
func Parse(query string) (*QueryPlan, error) {
	words := strings.Fields(query)
	switch {
	case len(words) == 3 && strings.EqualFold(words[1], "OR") && !isOperator(words[0]) && !isOperator(words[2]):
		return &QueryPlan{First: words[0], Second: words[2], RawQuery: query}, nil
	case len(words) == 2 && !isOperator(words[0]) && !isOperator(words[1]):
		return &QueryPlan{First: words[0], Second: words[1], RawQuery: query}, nil
	}
	return nil, apperrors.Newf(apperrors.ErrInvalidInput, http.StatusBadRequest,
		"query %q must name two keywords, as in \"kw1 OR kw2\"", query)
}

// FromKeywords builds a plan from two separately supplied keywords.
func FromKeywords(first, second string) (*QueryPlan, error) {
	first, second = strings.TrimSpace(first), strings.TrimSpace(second)
	if first == "" || second == "" || strings.ContainsFunc(first+second, isSpace) {
		return nil, apperrors.New(apperrors.ErrInvalidInput, http.StatusBadRequest,
			"two single-word keywords are required")
	}
	return &QueryPlan{First: first, Second: second, RawQuery: first + " OR " + second}, nil
}

func isOperator(word string) bool {
	return strings.EqualFold(word, "OR")
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}
