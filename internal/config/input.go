package config

import (
	"fmt"
	"os"

	"github.com/bpsgo/compliance-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// PortfolioInput is the parsed contents of a portfolio YAML file: the building
// records, the MAI reference list, and any policy overrides. The loose-to-strict
// mapping from whatever source produced the file happens here, never inside the
// engine.
type PortfolioInput struct {
	Policy    domain.PolicyConfig `yaml:"-"`
	Buildings []domain.Building   `yaml:"buildings"`

	// MAIBuildingIDs is the authoritative MAI reference list. Membership here,
	// not the property-category string, decides MAI routing.
	MAIBuildingIDs []string `yaml:"mai_building_ids"`
}

// InputParser handles parsing and validation of portfolio input files.
type InputParser struct{}

// NewInputParser creates a new input parser.
func NewInputParser() *InputParser {
	return &InputParser{}
}

// fileSchema mirrors the YAML document layout. The policy block is decoded onto
// a prefilled default so a file may override any subset of the reference values.
type fileSchema struct {
	Policy         yaml.Node         `yaml:"policy"`
	Buildings      []domain.Building `yaml:"buildings"`
	MAIBuildingIDs []string          `yaml:"mai_building_ids"`
}

// LoadFromFile loads a portfolio input from a YAML file.
func (ip *InputParser) LoadFromFile(filename string) (*PortfolioInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a portfolio input document.
func (ip *InputParser) Parse(data []byte) (*PortfolioInput, error) {
	var schema fileSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	input := &PortfolioInput{
		Policy:         domain.DefaultPolicyConfig(),
		Buildings:      schema.Buildings,
		MAIBuildingIDs: schema.MAIBuildingIDs,
	}
	if schema.Policy.Kind != 0 {
		if err := schema.Policy.Decode(&input.Policy); err != nil {
			return nil, fmt.Errorf("failed to parse policy overrides: %w", err)
		}
	}

	ip.applyMAIList(input)

	if err := ip.Validate(input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}
	return input, nil
}

// applyMAIList sets the IsMAI flag from the reference list. Buildings already
// flagged in the data keep the flag; the list only ever adds.
func (ip *InputParser) applyMAIList(input *PortfolioInput) {
	if len(input.MAIBuildingIDs) == 0 {
		return
	}
	mai := make(map[string]bool, len(input.MAIBuildingIDs))
	for _, id := range input.MAIBuildingIDs {
		mai[id] = true
	}
	for i := range input.Buildings {
		if mai[input.Buildings[i].ID] {
			input.Buildings[i].IsMAI = true
		}
	}
}

// Validate checks the structural integrity of the input: policy sanity and
// building identity. Per-building numeric validity (area, EUI, targets) is
// deliberately left to the engine so a bad record surfaces as a per-building
// error in portfolio runs instead of rejecting the whole file.
func (ip *InputParser) Validate(input *PortfolioInput) error {
	if err := ip.validatePolicy(&input.Policy); err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}

	if len(input.Buildings) == 0 {
		return fmt.Errorf("no buildings provided")
	}

	seen := make(map[string]bool, len(input.Buildings))
	for i, b := range input.Buildings {
		if b.ID == "" {
			return fmt.Errorf("building %d: id is required", i)
		}
		if seen[b.ID] {
			return fmt.Errorf("building %d: duplicate id %q", i, b.ID)
		}
		seen[b.ID] = true
	}

	return nil
}

func (ip *InputParser) validatePolicy(policy *domain.PolicyConfig) error {
	if policy.StandardRate.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("standard rate must be positive")
	}
	if policy.OptInRate.LessThanOrEqual(policy.StandardRate) {
		return fmt.Errorf("opt-in rate must exceed the standard rate")
	}
	if policy.MaxReductionCap.LessThanOrEqual(decimal.Zero) || policy.MaxReductionCap.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("max reduction cap must be between 0 and 1")
	}
	if policy.MAITargetFloor.LessThan(decimal.Zero) {
		return fmt.Errorf("MAI target floor cannot be negative")
	}
	if policy.DiscountRate.LessThan(decimal.Zero) || policy.DiscountRate.GreaterThan(decimal.NewFromFloat(0.5)) {
		return fmt.Errorf("discount rate must be between 0 and 50%%")
	}
	if policy.AnalysisBaseYear < 2000 || policy.AnalysisBaseYear > 2100 {
		return fmt.Errorf("analysis base year %d is implausible", policy.AnalysisBaseYear)
	}
	if policy.OngoingHorizonYears <= 0 || policy.OngoingHorizonYears > 50 {
		return fmt.Errorf("ongoing horizon years must be between 1 and 50")
	}

	sm := policy.StandardMilestones
	if !(sm.FirstInterim < sm.SecondInterim && sm.SecondInterim < sm.Final) {
		return fmt.Errorf("standard milestone years must be strictly increasing")
	}
	om := policy.OptInMilestones
	if om.Interim >= om.Final {
		return fmt.Errorf("opt-in milestone years must be strictly increasing")
	}

	if policy.MinPortfolioArea.LessThan(decimal.Zero) {
		return fmt.Errorf("minimum portfolio area cannot be negative")
	}
	return nil
}

// ExampleYAML renders the starter portfolio as a YAML document suitable for
// editing into a real input file.
func (ip *InputParser) ExampleYAML() ([]byte, error) {
	example := ip.CreateExampleInput()
	doc := fileExport{
		Policy:         example.Policy,
		Buildings:      example.Buildings,
		MAIBuildingIDs: example.MAIBuildingIDs,
	}
	return yaml.Marshal(&doc)
}

// fileExport is the write-side counterpart of fileSchema.
type fileExport struct {
	Policy         domain.PolicyConfig `yaml:"policy"`
	Buildings      []domain.Building   `yaml:"buildings"`
	MAIBuildingIDs []string            `yaml:"mai_building_ids"`
}

// CreateExampleInput returns a small, valid starter portfolio using the
// reference policy values.
func (ip *InputParser) CreateExampleInput() *PortfolioInput {
	input := &PortfolioInput{
		Policy: domain.DefaultPolicyConfig(),
		Buildings: []domain.Building{
			{
				ID:               "100231",
				Name:             "Civic Center Office Tower",
				PropertyCategory: "Office",
				Area:             decimal.NewFromInt(52826),
				CurrentEUI:       decimal.NewFromFloat(69.0),
				BaselineEUI:      decimal.NewFromFloat(69.0),
				BaselineYear:     2019,
				YearBuilt:        1988,
				RawTargets: domain.RawTargets{
					FirstInterim:  decimal.NewFromFloat(65.4),
					SecondInterim: decimal.NewFromFloat(63.2),
					Final:         decimal.NewFromFloat(61.0),
				},
			},
			{
				ID:               "100547",
				Name:             "Riverside Fabrication Plant",
				PropertyCategory: "Manufacturing/Industrial Plant",
				Area:             decimal.NewFromInt(118400),
				CurrentEUI:       decimal.NewFromFloat(412.7),
				BaselineEUI:      decimal.NewFromFloat(536.6),
				BaselineYear:     2019,
				YearBuilt:        1962,
				RawTargets: domain.RawTargets{
					FirstInterim:  decimal.NewFromFloat(380.0),
					SecondInterim: decimal.NewFromFloat(240.0),
					Final:         decimal.NewFromFloat(100.0),
				},
			},
			{
				ID:               "101911",
				Name:             "Maple Grove Senior Residences",
				PropertyCategory: "Senior Living Community",
				Area:             decimal.NewFromInt(64120),
				CurrentEUI:       decimal.NewFromFloat(88.3),
				BaselineEUI:      decimal.NewFromFloat(92.1),
				BaselineYear:     2019,
				YearBuilt:        1974,
				RawTargets: domain.RawTargets{
					FirstInterim:  decimal.NewFromFloat(84.0),
					SecondInterim: decimal.NewFromFloat(77.5),
					Final:         decimal.NewFromFloat(70.2),
				},
			},
		},
		MAIBuildingIDs: []string{"100547"},
	}
	ip.applyMAIList(input)
	return input
}
