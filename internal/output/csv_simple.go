package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/bpsgo/compliance-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output: per-building rows for
// a single analysis, per-scenario-year rows for a portfolio comparison.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) FormatBuilding(analysis *domain.BuildingAnalysis) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"BuildingID", "Path", "Milestone", "Year", "TargetEUI", "AdjustmentReason", "Penalty"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	paths := []struct {
		targets  []domain.MilestoneTarget
		schedule *domain.PenaltySchedule
	}{
		{analysis.Targets.Standard, &analysis.StandardSchedule},
		{analysis.Targets.OptIn, &analysis.OptInSchedule},
	}
	for _, p := range paths {
		for i, mt := range p.targets {
			row := []string{
				analysis.BuildingID,
				string(p.schedule.Path),
				string(mt.Milestone),
				strconv.Itoa(mt.Year),
				mt.Target.Value.StringFixed(1),
				string(mt.Target.Reason),
				p.schedule.Milestones[i].Penalty.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (c CSVSummarizer) FormatPortfolio(results *domain.PortfolioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Penalty", "AtRiskBuildings", "PenaltyPerSqFtAtRisk", "TotalNominal", "TotalNPV"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, table := range []*domain.ScenarioTable{&results.AllStandard, &results.AllOptIn, &results.Hybrid} {
		for _, year := range table.Years() {
			perArea := ""
			if rate, ok := table.PenaltyPerAreaAtRisk[year]; ok {
				perArea = rate.StringFixed(2)
			}
			row := []string{
				string(table.Scenario),
				strconv.Itoa(year),
				table.PenaltyByYear[year].StringFixed(2),
				strconv.Itoa(table.AtRiskByYear[year]),
				perArea,
				table.TotalNominal.StringFixed(2),
				table.TotalNPV.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
