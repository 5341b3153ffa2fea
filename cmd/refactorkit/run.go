package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"refactorkit/internal/config"
	"refactorkit/internal/llm"
	"refactorkit/internal/logging"
	"refactorkit/internal/refactor"
	"refactorkit/internal/retrieval"
)

// errHalted signals a non-refusal pipeline halt whose banner and
// message were already printed. The root command maps it to exit code
// 1 without printing it again.
var errHalted = errors.New("pipeline halted")

var haltStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("203")).
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1)

type runFlags struct {
	configPath   string
	concerns     []string
	all          bool
	jsonOutput   bool
	maxTokens    int
	instructions string
	plain        bool
	workers      int
}

func newRunCmd() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <file-or-url> [more...]",
		Short: "Refactor one or more files through the enabled concern passes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				return runRefactor(cmd, args[0], flags)
			}
			return runBatch(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", ".refactorkit/config.yaml", "config file path")
	cmd.Flags().StringSliceVar(&flags.concerns, "concern", nil, "concern to enable (repeatable): security, performance, memory, correctness, maintainability, reliability")
	cmd.Flags().BoolVar(&flags.all, "all", false, "enable every concern")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "emit the structured JSON report")
	cmd.Flags().IntVar(&flags.maxTokens, "max-tokens", 0, "override the artifact size ceiling in tokens")
	cmd.Flags().StringVar(&flags.instructions, "instructions", "", "additional instructions passed verbatim to every pass")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print raw markdown without terminal rendering")
	cmd.Flags().IntVar(&flags.workers, "workers", 2, "concurrent pipeline runs when multiple files are given")

	return cmd
}

func runRefactor(cmd *cobra.Command, locator string, flags *runFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.LoggingSettings()); err != nil {
		return err
	}

	applyFlags(cfg, cmd, flags)
	pipeCfg := cfg.Pipeline()

	client, err := buildClient(cmd, cfg)
	if err != nil {
		return err
	}

	artifact, err := retrieval.ForLocator(locator).Fetch(cmd.Context(), locator)
	if err != nil {
		return err
	}

	start := time.Now()
	outcome, err := refactor.New(client).Run(cmd.Context(), artifact, pipeCfg)
	if err != nil {
		return err
	}

	if outcome.State != refactor.StateCompleted {
		fmt.Fprintln(os.Stderr, haltStyle.Render(fmt.Sprintf("pipeline %s", outcome.State)))
		fmt.Fprintln(os.Stderr, outcome.Message)
		if outcome.State == refactor.StateHaltedRefusal {
			// The model declined; that is an answer, not a failure.
			return nil
		}
		return errHalted
	}

	if err := printReport(outcome.Report, pipeCfg.StructuredOutput, flags.plain); err != nil {
		return err
	}

	logging.Pipeline("cli run over %q finished in %v", locator, time.Since(start))
	return nil
}

// printReport renders a completed run's report to stdout.
func printReport(report *refactor.FinalReport, structured, plain bool) error {
	rendered, err := refactor.Render(report, structured)
	if err != nil {
		return err
	}

	if structured || plain {
		fmt.Println(rendered)
		return nil
	}
	pretty, err := renderTerminal(rendered)
	if err != nil {
		fmt.Println(rendered)
		return nil
	}
	fmt.Print(pretty)
	return nil
}

// runBatch refactors several files concurrently. Each file gets its
// own report; one file's halt or fetch failure does not stop the rest.
func runBatch(cmd *cobra.Command, locators []string, flags *runFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	if err := logging.Initialize(cfg.LoggingSettings()); err != nil {
		return err
	}

	applyFlags(cfg, cmd, flags)
	pipeCfg := cfg.Pipeline()

	client, err := buildClient(cmd, cfg)
	if err != nil {
		return err
	}

	artifacts := make([]*refactor.SourceArtifact, 0, len(locators))
	for _, locator := range locators {
		artifact, err := retrieval.ForLocator(locator).Fetch(cmd.Context(), locator)
		if err != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", locator, err)
			continue
		}
		artifacts = append(artifacts, artifact)
	}
	if len(artifacts) == 0 {
		return fmt.Errorf("nothing to refactor: every locator failed to fetch")
	}

	items, err := refactor.New(client).RunBatch(cmd.Context(), artifacts, pipeCfg, flags.workers)
	if err != nil {
		return err
	}

	failed := 0
	for _, item := range items {
		fmt.Printf("===== %s =====\n", item.Artifact.Label())
		switch {
		case item.Err != nil:
			failed++
			fmt.Fprintln(os.Stderr, item.Err)
		case item.Outcome.State != refactor.StateCompleted:
			if item.Outcome.State != refactor.StateHaltedRefusal {
				failed++
			}
			fmt.Fprintln(os.Stderr, haltStyle.Render(fmt.Sprintf("pipeline %s", item.Outcome.State)))
			fmt.Fprintln(os.Stderr, item.Outcome.Message)
		default:
			if err := printReport(item.Outcome.Report, pipeCfg.StructuredOutput, flags.plain); err != nil {
				return err
			}
		}
		fmt.Println()
	}

	if failed > 0 {
		return errHalted
	}
	return nil
}

// applyFlags layers command-line flags over the file config.
func applyFlags(cfg *config.Config, cmd *cobra.Command, flags *runFlags) {
	if flags.all {
		cfg.Refactor.EnableSecurity = true
		cfg.Refactor.EnablePerformance = true
		cfg.Refactor.EnableMemory = true
		cfg.Refactor.EnableCorrectness = true
		cfg.Refactor.EnableMaintainability = true
		cfg.Refactor.EnableReliability = true
	}
	for _, name := range flags.concerns {
		concern, ok := refactor.ParseConcern(name)
		if !ok {
			fmt.Fprintf(os.Stderr, "warning: unknown concern %q ignored\n", name)
			continue
		}
		switch concern {
		case refactor.ConcernSecurity:
			cfg.Refactor.EnableSecurity = true
		case refactor.ConcernPerformance:
			cfg.Refactor.EnablePerformance = true
		case refactor.ConcernMemory:
			cfg.Refactor.EnableMemory = true
		case refactor.ConcernCorrectness:
			cfg.Refactor.EnableCorrectness = true
		case refactor.ConcernMaintainability:
			cfg.Refactor.EnableMaintainability = true
		case refactor.ConcernReliability:
			cfg.Refactor.EnableReliability = true
		}
	}
	if flags.maxTokens > 0 {
		cfg.Refactor.MaxCodeSizeTokens = flags.maxTokens
	}
	if cmd.Flags().Changed("json") {
		cfg.Refactor.JSONOutput = flags.jsonOutput
	}
	if flags.instructions != "" {
		cfg.Refactor.AdditionalInstructions = flags.instructions
	}
}

// buildClient resolves the model provider from config, falling back to
// environment variables.
func buildClient(cmd *cobra.Command, cfg *config.Config) (llm.Client, error) {
	var pc *llm.ProviderConfig
	if cfg.LLM.Provider != "" && cfg.LLM.APIKey != "" {
		pc = &llm.ProviderConfig{
			Provider: llm.Provider(cfg.LLM.Provider),
			APIKey:   cfg.LLM.APIKey,
			Model:    cfg.LLM.Model,
			BaseURL:  cfg.LLM.BaseURL,
			Timeout:  cfg.LLM.ParsedTimeout(),
		}
	} else {
		detected, err := llm.DetectProvider()
		if err != nil {
			return nil, err
		}
		if cfg.LLM.Model != "" {
			detected.Model = cfg.LLM.Model
		}
		pc = detected
	}
	return llm.NewClient(cmd.Context(), pc)
}

// renderTerminal pretty-prints the markdown report for the terminal.
func renderTerminal(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(markdown)
}
