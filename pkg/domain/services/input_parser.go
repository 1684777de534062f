package services

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// InputParser validates raw numeric text typed into a reception form
type InputParser struct {
	inputPattern *regexp.Regexp
}

// NewInputParser creates a parser accepting optional digits, an optional single
// '.', then at most two decimals
func NewInputParser() *InputParser {
	return &InputParser{
		inputPattern: regexp.MustCompile(`^\d*\.?\d{0,2}$`),
	}
}

// Parse returns the value of raw and whether it was accepted. Empty text is
// zero. Text that does not match the pattern is rejected so a form field keeps
// its in-progress digits instead of collapsing to zero. Partial entries such as
// "12." or "." are accepted as the number typed so far.
func (p *InputParser) Parse(raw string) (decimal.Decimal, bool) {
	if raw == "" {
		return decimal.Zero, true
	}
	if !p.inputPattern.MatchString(raw) {
		return decimal.Zero, false
	}

	digits := strings.TrimSuffix(raw, ".")
	if digits == "" {
		return decimal.Zero, true
	}
	if strings.HasPrefix(digits, ".") {
		digits = "0" + digits
	}

	value, err := decimal.NewFromString(digits)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}
