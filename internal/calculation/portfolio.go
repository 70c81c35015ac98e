package calculation

import (
	"context"

	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// PortfolioAggregator runs the compliance engine across a building collection and
// produces the three scenario comparisons (all-standard, all-opt-in, hybrid).
//
// Per-building computations are independent, so the analysis phase may fan out
// across workers; the reduce phase is always sequential in input order, which
// keeps repeated runs bit-identical.
type PortfolioAggregator struct {
	engine     *ComplianceEngine
	normalizer *YearNormalizer

	// Workers caps the analysis fan-out. Values <= 1 run sequentially.
	Workers int
}

// NewPortfolioAggregator creates an aggregator around an engine.
func NewPortfolioAggregator(engine *ComplianceEngine) *PortfolioAggregator {
	return &PortfolioAggregator{
		engine:     engine,
		normalizer: NewYearNormalizer(engine.Policy),
		Workers:    1,
	}
}

// MappingCounts exposes the year normalizer's diagnostic counter.
func (pa *PortfolioAggregator) MappingCounts() map[MappingKey]int {
	return pa.normalizer.MappingCounts()
}

// Run analyzes every building at or above the minimum portfolio area and builds
// the three scenario tables. A building whose computation fails is recorded in
// the comparison's error list and skipped; it never aborts the run. The returned
// error is non-nil only on context cancellation.
func (pa *PortfolioAggregator) Run(ctx context.Context, buildings []domain.Building) (*domain.PortfolioComparison, error) {
	comparison := &domain.PortfolioComparison{}

	// Sub-threshold buildings are excluded from portfolio analysis only; they
	// remain analyzable individually through the engine.
	included := make([]int, 0, len(buildings))
	for i := range buildings {
		if buildings[i].Area.LessThan(pa.engine.Policy.MinPortfolioArea) {
			comparison.ExcludedBuildingIDs = append(comparison.ExcludedBuildingIDs, buildings[i].ID)
			continue
		}
		included = append(included, i)
	}

	analyses := make([]*domain.BuildingAnalysis, len(included))
	failures := make([]error, len(included))

	if pa.Workers > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(pa.Workers)
		for slot, idx := range included {
			slot, idx := slot, idx
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				analyses[slot], failures[slot] = pa.engine.AnalyzeBuilding(&buildings[idx])
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for slot, idx := range included {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			analyses[slot], failures[slot] = pa.engine.AnalyzeBuilding(&buildings[idx])
		}
	}

	allStandard := newScenarioAccumulator(domain.ScenarioAllStandard)
	allOptIn := newScenarioAccumulator(domain.ScenarioAllOptIn)
	hybrid := newScenarioAccumulator(domain.ScenarioHybrid)

	for slot, idx := range included {
		b := &buildings[idx]
		if failures[slot] != nil {
			comparison.Errors = append(comparison.Errors, domain.NewBuildingError(b.ID, failures[slot]))
			continue
		}
		analysis := analyses[slot]
		comparison.Analyses = append(comparison.Analyses, *analysis)

		// MAI buildings are opt-in in every scenario.
		standardSchedule := &analysis.StandardSchedule
		if b.IsMAI {
			standardSchedule = &analysis.OptInSchedule
		}
		pa.accumulate(allStandard, b.Area, standardSchedule)

		pa.accumulate(allOptIn, b.Area, &analysis.OptInSchedule)

		hybridSchedule := &analysis.StandardSchedule
		if analysis.Recommendation.ShouldOptIn {
			hybridSchedule = &analysis.OptInSchedule
		}
		pa.accumulate(hybrid, b.Area, hybridSchedule)
	}

	comparison.AllStandard = allStandard.finalize()
	comparison.AllOptIn = allOptIn.finalize()
	comparison.Hybrid = hybrid.finalize()
	return comparison, nil
}

func (pa *PortfolioAggregator) accumulate(acc *scenarioAccumulator, area decimal.Decimal, schedule *domain.PenaltySchedule) {
	for _, mp := range schedule.Milestones {
		year := pa.normalizer.Normalize(mp.Year, mp.Milestone, schedule.Path)
		acc.penalty[year] = acc.penalty[year].Add(mp.Penalty)
		if mp.Penalty.GreaterThan(decimal.Zero) {
			acc.atRisk[year]++
			acc.areaAtRisk[year] = acc.areaAtRisk[year].Add(area)
		}
	}
	acc.totalNominal = acc.totalNominal.Add(schedule.TotalNominal)
	acc.totalNPV = acc.totalNPV.Add(schedule.TotalNPV)
}

type scenarioAccumulator struct {
	scenario     domain.Scenario
	penalty      map[int]decimal.Decimal
	atRisk       map[int]int
	areaAtRisk   map[int]decimal.Decimal
	totalNominal decimal.Decimal
	totalNPV     decimal.Decimal
}

func newScenarioAccumulator(scenario domain.Scenario) *scenarioAccumulator {
	return &scenarioAccumulator{
		scenario:     scenario,
		penalty:      make(map[int]decimal.Decimal),
		atRisk:       make(map[int]int),
		areaAtRisk:   make(map[int]decimal.Decimal),
		totalNominal: decimal.Zero,
		totalNPV:     decimal.Zero,
	}
}

func (acc *scenarioAccumulator) finalize() domain.ScenarioTable {
	table := domain.ScenarioTable{
		Scenario:             acc.scenario,
		PenaltyByYear:        acc.penalty,
		AtRiskByYear:         acc.atRisk,
		PenaltyPerAreaAtRisk: make(map[int]decimal.Decimal, len(acc.penalty)),
		TotalNominal:         acc.totalNominal,
		TotalNPV:             acc.totalNPV,
	}
	// The per-area ratio divides by the floor area of at-risk buildings only.
	// Dividing by the whole portfolio's area would understate exposure.
	for year, total := range acc.penalty {
		if acc.atRisk[year] > 0 {
			table.PenaltyPerAreaAtRisk[year] = total.Div(acc.areaAtRisk[year])
		}
	}
	return table
}
