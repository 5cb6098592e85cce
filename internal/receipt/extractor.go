// Package receipt proposes a transaction amount from the OCR text of a
// photographed receipt.
//
// Extraction runs an ordered list of matchers, each more permissive than the
// last, and stops at the first one that produces an amount in range.
package receipt

import "strings"

const (
	MinAmount = 100
	MaxAmount = 100_000_000

	// Lines without a keyword often carry item prices, so the bottom-up scan
	// uses a higher floor.
	minBottomUpAmount = 1000
)

var (
	highPriorityKeywords = []string{
		"결제금액", "결제 금액", "승인금액", "승인 금액", "카드결제", "카드 결제",
		"최종금액", "받을금액", "총합계", "합계금액", "총금액", "총액", "합계",
		"TOTAL", "Total", "total",
	}
	normalPriorityKeywords = []string{
		"판매금액", "청구금액", "공급가액", "금액", "결제",
		"AMOUNT", "Amount", "amount", "SUM", "Sum",
	}
)

// Matcher inspects a document and reports an amount when it is confident.
type Matcher func(doc *Document) (int64, bool)

// FirstMatch runs matchers in order and returns the first reported amount.
func FirstMatch(matchers ...Matcher) Matcher {
	return func(doc *Document) (int64, bool) {
		for _, m := range matchers {
			if v, ok := m(doc); ok {
				return v, true
			}
		}
		return 0, false
	}
}

var (
	HighPriorityKeywords   = KeywordMatcher(highPriorityKeywords)
	NormalPriorityKeywords = KeywordMatcher(normalPriorityKeywords)

	defaultMatcher = FirstMatch(
		HighPriorityKeywords,
		NormalPriorityKeywords,
		CurrencySuffix,
		BottomUp,
		Fallback,
	)
)

// Extract returns the most likely total in text, or 0 when nothing qualifies.
func Extract(text string) int64 {
	v, _ := defaultMatcher(NewDocument(text))
	return v
}

func inRange(v, floor int64) bool {
	return v >= floor && v <= MaxAmount
}

// KeywordMatcher tries each keyword in order against the first line that
// contains it.
func KeywordMatcher(keywords []string) Matcher {
	return func(doc *Document) (int64, bool) {
		for _, keyword := range keywords {
			for _, line := range doc.Lines {
				if !strings.Contains(line, keyword) {
					continue
				}
				if v := amountFromLine(line); inRange(v, MinAmount) {
					return v, true
				}
				break
			}
		}
		return 0, false
	}
}

// CurrencySuffix returns the largest in-range number followed by the currency
// suffix anywhere in the text.
func CurrencySuffix(doc *Document) (int64, bool) {
	var best int64
	found := false
	for _, m := range suffixPattern.FindAllStringSubmatch(doc.Text, -1) {
		v, ok := parseAmount(m[1])
		if ok && inRange(v, MinAmount) && v > best {
			best, found = v, true
		}
	}
	return best, found
}

// BottomUp walks lines from the end of the receipt, where totals are printed,
// and keeps the largest per-line amount.
func BottomUp(doc *Document) (int64, bool) {
	var best int64
	found := false
	for i := len(doc.Lines) - 1; i >= 0; i-- {
		v := amountFromLine(doc.Lines[i])
		if inRange(v, minBottomUpAmount) && v > best {
			best, found = v, true
		}
	}
	return best, found
}

// Fallback returns the largest in-range number-like token in the text.
func Fallback(doc *Document) (int64, bool) {
	var best int64
	found := false
	for _, token := range numberPattern.FindAllString(doc.Text, -1) {
		v, ok := parseAmount(token)
		if ok && inRange(v, MinAmount) && v > best {
			best, found = v, true
		}
	}
	return best, found
}
