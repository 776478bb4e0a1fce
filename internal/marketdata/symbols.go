package marketdata

import "strings"

// symbolAliases maps tickers as written in the securities master to the
// vendor's canonical form. Class shares are commonly written without the
// dash separator.
var symbolAliases = map[string]string{
	"BRKB": "BRK-B",
	"BRKA": "BRK-A",
}

// NormalizeSymbol trims whitespace and applies the alias table.
func NormalizeSymbol(symbol string) string {
	cleaned := strings.TrimSpace(symbol)
	if canonical, ok := symbolAliases[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// NormalizeSymbols normalizes, drops blanks, and deduplicates while keeping
// first-seen order.
func NormalizeSymbols(symbols []string) []string {
	seen := make(map[string]bool)
	normalized := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		symbol := NormalizeSymbol(raw)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		normalized = append(normalized, symbol)
	}
	return normalized
}
