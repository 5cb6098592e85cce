package receipt

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const currencySuffix = "원"

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v]+`)

	// A number is a run of digits with comma/period grouping. OCR engines also
	// split groups with a single space, so " 000"-style groups are accepted.
	numberExpr    = `\d[\d,.]*(?: \d{3}\b)*`
	numberPattern = regexp.MustCompile(numberExpr)
	suffixPattern = regexp.MustCompile(`(` + numberExpr + `)\s*` + currencySuffix)

	groupingStripper = strings.NewReplacer(",", "", ".", "", " ", "")
)

// Document is OCR text prepared for matching: NFKC-normalized (full-width
// digits and commas become ASCII), horizontal whitespace collapsed, and split
// into non-empty lines.
type Document struct {
	Text  string
	Lines []string
}

// NewDocument normalizes raw recognized text.
func NewDocument(raw string) *Document {
	text := norm.NFKC.String(raw)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
		if line != "" {
			lines = append(lines, line)
		}
	}

	return &Document{
		Text:  strings.Join(lines, "\n"),
		Lines: lines,
	}
}

// parseAmount strips grouping characters and parses the rest as an integer.
// Overflowing or malformed tokens report false.
func parseAmount(token string) (int64, bool) {
	digits := groupingStripper.Replace(token)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// amountFromLine prefers the number written right before the currency suffix
// and otherwise falls back to the largest number on the line. Zero means the
// line holds no usable number.
func amountFromLine(line string) int64 {
	if m := suffixPattern.FindStringSubmatch(line); m != nil {
		if v, ok := parseAmount(m[1]); ok && v > 0 {
			return v
		}
	}
	return largestNumber(line)
}

func largestNumber(s string) int64 {
	var largest int64
	for _, token := range numberPattern.FindAllString(s, -1) {
		if v, ok := parseAmount(token); ok && v > largest {
			largest = v
		}
	}
	return largest
}
