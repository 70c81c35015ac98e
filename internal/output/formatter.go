package output

import (
	"fmt"
	"strings"

	"github.com/bpsgo/compliance-calculator/internal/domain"
)

// Formatter defines a pluggable output formatter. Implementations must be pure:
// deterministic bytes out for identical results in, no side effects.
type Formatter interface {
	FormatBuilding(analysis *domain.BuildingAnalysis) ([]byte, error)
	FormatPortfolio(results *domain.PortfolioComparison) ([]byte, error)
	// Name returns a short identifier used for selection and logging.
	Name() string
}

// builtInFormatters stores the available formatters.
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
	CSVSummarizer{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) (Formatter, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f, nil
		}
	}
	return nil, fmt.Errorf("unknown output format %q (available: %s)", name, strings.Join(FormatterNames(), ", "))
}

// FormatterNames lists the registered formatter identifiers.
func FormatterNames() []string {
	names := make([]string, len(builtInFormatters))
	for i, f := range builtInFormatters {
		names[i] = f.Name()
	}
	return names
}
