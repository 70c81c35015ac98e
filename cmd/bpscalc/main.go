package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bpsgo/compliance-calculator/internal/calculation"
	"github.com/bpsgo/compliance-calculator/internal/config"
	"github.com/bpsgo/compliance-calculator/internal/output"
)

var (
	configPath     string
	formatName     string
	verbose        bool
	includeOngoing bool
	workers        int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "bpscalc",
		Short: "Building-performance penalty and compliance-pathway calculator",
		Long: `bpscalc computes regulatory penalty exposure under a building performance
ordinance and recommends a compliance pathway (standard vs opt-in/ACO) per
building, with portfolio-wide scenario comparisons.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "portfolio input YAML file")
	root.PersistentFlags().StringVarP(&formatName, "format", "f", "console", "output format (console, json, csv)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&includeOngoing, "ongoing", false, "extend penalty totals with flat continuation through the analysis horizon")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newPortfolioCmd())
	root.AddCommand(newExampleCmd())
	return root
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <building-id>",
		Short: "Analyze a single building",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, formatter, logger, err := loadCommon()
			if err != nil {
				return err
			}

			engine := calculation.NewComplianceEngine(input.Policy)
			engine.SetLogger(logger)
			engine.IncludeOngoing = includeOngoing

			buildingID := args[0]
			for i := range input.Buildings {
				if input.Buildings[i].ID == buildingID {
					analysis, err := engine.AnalyzeBuilding(&input.Buildings[i])
					if err != nil {
						return err
					}
					data, err := formatter.FormatBuilding(analysis)
					if err != nil {
						return err
					}
					cmd.OutOrStdout().Write(data)
					return nil
				}
			}
			return fmt.Errorf("building %q not found in %s", buildingID, configPath)
		},
	}
}

func newPortfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Run the three-scenario portfolio comparison",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, formatter, logger, err := loadCommon()
			if err != nil {
				return err
			}

			engine := calculation.NewComplianceEngine(input.Policy)
			engine.SetLogger(logger)
			engine.IncludeOngoing = includeOngoing

			aggregator := calculation.NewPortfolioAggregator(engine)
			aggregator.Workers = workers

			results, err := aggregator.Run(cmd.Context(), input.Buildings)
			if err != nil {
				return err
			}

			logger.Infof("portfolio run: %d analyzed, %d failed, %d excluded below minimum area",
				results.AnalyzedCount(), len(results.Errors), len(results.ExcludedBuildingIDs))

			data, err := formatter.FormatPortfolio(results)
			if err != nil {
				return err
			}
			cmd.OutOrStdout().Write(data)
			return nil
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 1, "parallel analysis workers (1 = sequential)")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print a starter portfolio input YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.NewInputParser().ExampleYAML()
			if err != nil {
				return err
			}
			cmd.OutOrStdout().Write(data)
			return nil
		},
	}
}

func loadCommon() (*config.PortfolioInput, output.Formatter, calculation.Logger, error) {
	if configPath == "" {
		return nil, nil, nil, fmt.Errorf("--config is required")
	}
	input, err := config.NewInputParser().LoadFromFile(configPath)
	if err != nil {
		return nil, nil, nil, err
	}
	formatter, err := output.GetFormatterByName(formatName)
	if err != nil {
		return nil, nil, nil, err
	}
	return input, formatter, newLogger(verbose), nil
}
