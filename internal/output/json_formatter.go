package output

import (
	"encoding/json"

	"github.com/bpsgo/compliance-calculator/internal/domain"
)

// JSONFormatter serializes results as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) FormatBuilding(analysis *domain.BuildingAnalysis) ([]byte, error) {
	return json.MarshalIndent(analysis, "", "  ")
}

func (j JSONFormatter) FormatPortfolio(results *domain.PortfolioComparison) ([]byte, error) {
	return json.MarshalIndent(results, "", "  ")
}
