package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"methodcost/adapters/excel"
	"methodcost/adapters/report"
	"methodcost/app"
	domainAnalysis "methodcost/domain/analysis"
	"methodcost/domain/project"
	domainStats "methodcost/domain/stats"
	"methodcost/internal"
	"methodcost/internal/config"
	"methodcost/internal/statistics"
	"methodcost/internal/testkit"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func main() {
	godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "methodcost",
		Short:         "Compare project costs across delivery methodologies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newDashboardCmd(),
		newCompareCmd(),
		newSummarizeCmd(),
		newSampleCmd(),
	)
	return rootCmd
}

// session wires the services over an in-memory store loaded from a
// portfolio file
type session struct {
	cfg      *config.Config
	projects *app.ProjectService
	analyses *app.AnalysisService
}

func openSession(ctx context.Context, input string) (*session, error) {
	cfg, err := config.LoadOffline()
	if err != nil {
		return nil, err
	}
	logger := internal.NewLoggerTo(os.Stderr, internal.ParseLogLevel(cfg.LogLevel))

	kit := testkit.NewTestKit()
	s := &session{
		cfg:      cfg,
		projects: app.NewProjectService(kit.Projects, logger),
		analyses: app.NewAnalysisService(kit.Projects, kit.Analyses, logger).WithSaveTimeout(cfg.Analysis.SaveTimeout),
	}

	if input == "" {
		input = cfg.Data.ProjectsFile
	}
	if input == "" {
		return nil, fmt.Errorf("no input file: pass --input or set PROJECTS_FILE")
	}
	if _, err := s.projects.ImportFile(ctx, cfg.Server.DefaultUserID, input); err != nil {
		return nil, err
	}
	return s, nil
}

func newAnalyzeCmd() *cobra.Command {
	var input, name, test, out string
	var metrics, methodologies, industries []string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a methodology cost analysis over a portfolio file",
		Long: `Run a methodology cost analysis over an .xlsx or .csv portfolio.

The export format follows the --out extension: .csv, .xlsx, .md or .html.

Example: methodcost analyze --input projects.xlsx --metrics actualCost,costVariance --out q2.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), input)
			if err != nil {
				return err
			}

			cfg := domainAnalysis.Config{
				Name:            name,
				StatisticalTest: domainStats.TestType(test),
				Filters:         domainAnalysis.Filters{Industry: industries},
			}
			for _, m := range metrics {
				cfg.Metrics = append(cfg.Metrics, domainAnalysis.MetricKey(m))
			}
			for _, m := range methodologies {
				cfg.Filters.Methodology = append(cfg.Filters.Methodology, project.Methodology(m))
			}

			outcome, err := s.analyses.RunAnalysis(cmd.Context(), s.cfg.Server.DefaultUserID, cfg)
			if err != nil {
				return err
			}

			printAnalysis(cmd.OutOrStdout(), outcome.Analysis)
			if out == "" {
				return nil
			}
			if err := writeAnalysisFile(out, outcome.Analysis); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Portfolio file (.xlsx or .csv); defaults to PROJECTS_FILE")
	cmd.Flags().StringVar(&name, "name", "Methodology comparison", "Analysis name")
	cmd.Flags().StringSliceVar(&metrics, "metrics", nil, "Metrics to compare: actualCost, costVariance, reworkCost")
	cmd.Flags().StringVar(&test, "test", string(domainStats.TestTTest), "Statistical test: ttest|mannwhitney")
	cmd.Flags().StringSliceVar(&methodologies, "methodology", nil, "Only include these methodologies")
	cmd.Flags().StringSliceVar(&industries, "industry", nil, "Only include these industries")
	cmd.Flags().StringVar(&out, "out", "", "Export file (.csv, .xlsx, .md or .html)")
	return cmd
}

func newDashboardCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print portfolio headline figures and insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), input)
			if err != nil {
				return err
			}
			view, err := s.analyses.Dashboard(cmd.Context(), s.cfg.Server.DefaultUserID)
			if err != nil {
				return err
			}
			printDashboard(cmd.OutOrStdout(), view.Dashboard)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Portfolio file (.xlsx or .csv); defaults to PROJECTS_FILE")
	return cmd
}

func newCompareCmd() *cobra.Command {
	var a, b, test string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare two samples",
		Long: `Compare two comma-separated samples, A against B.

Example: methodcost compare --a 120,135,150 --b 100,110,95 --test mannwhitney`,
		RunE: func(cmd *cobra.Command, args []string) error {
			groupA, err := parseFloats(strings.Split(a, ","))
			if err != nil {
				return fmt.Errorf("--a: %w", err)
			}
			groupB, err := parseFloats(strings.Split(b, ","))
			if err != nil {
				return fmt.Errorf("--b: %w", err)
			}
			tt := domainStats.TestType(test)
			if !tt.IsKnown() {
				return fmt.Errorf("unknown test %q", test)
			}
			printComparison(cmd.OutOrStdout(), statistics.CompareDetailed(tt, groupA, groupB))
			return nil
		},
	}

	cmd.Flags().StringVar(&a, "a", "", "Group A values")
	cmd.Flags().StringVar(&b, "b", "", "Group B values")
	cmd.Flags().StringVar(&test, "test", string(domainStats.TestTTest), "Statistical test: ttest|mannwhitney")
	cmd.MarkFlagRequired("a")
	cmd.MarkFlagRequired("b")
	return cmd
}

func newSummarizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summarize [values...]",
		Short: "Print summary statistics of a sample",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseFloats(args)
			if err != nil {
				return err
			}
			s := statistics.Summarize(values)
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Count", "Mean", "Median", "Std Dev", "Min", "Max"})
			table.Append([]string{
				strconv.Itoa(s.Count), num(s.Mean), num(s.Median), num(s.StandardDeviation), num(s.Min), num(s.Max),
			})
			table.Render()
			return nil
		},
	}
}

func newSampleCmd() *cobra.Command {
	var out string
	var generate int
	var seed int64

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a sample portfolio file",
		Long: `Write the five built-in sample projects, or a generated portfolio, to an
.xlsx or .csv file that analyze can read back.

Example: methodcost sample --out projects.xlsx --generate 60 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOffline()
			if err != nil {
				return err
			}

			projects := testkit.SampleProjects(cfg.Server.DefaultUserID)
			if generate > 0 {
				genCfg := testkit.DefaultProjectConfig()
				genCfg.ProjectCount = generate
				genCfg.Seed = seed
				projects = testkit.NewProjectGenerator(genCfg).Generate(cfg.Server.DefaultUserID)
			}

			if err := writeProjectsFile(out, projects); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d projects to %s\n", len(projects), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "projects.xlsx", "Output file (.xlsx or .csv)")
	cmd.Flags().IntVar(&generate, "generate", 0, "Generate this many synthetic projects instead of the samples")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for generated projects")
	return cmd
}

func parseFloats(raw []string) ([]float64, error) {
	values := make([]float64, 0, len(raw))
	for _, r := range raw {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", r)
		}
		values = append(values, v)
	}
	return values, nil
}

func writeAnalysisFile(path string, a domainAnalysis.SavedAnalysis) error {
	var write func(io.Writer, domainAnalysis.SavedAnalysis) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		write = excel.WriteAnalysisCSV
	case ".xlsx":
		write = excel.WriteAnalysisXLSX
	case ".md":
		write = report.WriteMarkdown
	case ".html":
		write = report.WriteHTML
	default:
		return fmt.Errorf("unsupported export extension %q", filepath.Ext(path))
	}
	return createWith(path, func(w io.Writer) error { return write(w, a) })
}

func writeProjectsFile(path string, projects []project.Project) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return createWith(path, func(w io.Writer) error { return excel.WriteProjectsCSV(w, projects) })
	case ".xlsx":
		return createWith(path, func(w io.Writer) error { return excel.WriteProjectsXLSX(w, projects) })
	default:
		return fmt.Errorf("unsupported portfolio extension %q", filepath.Ext(path))
	}
}

func createWith(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
