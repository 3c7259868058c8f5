// cmd/centrim-docgen/main.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/abhay-ecaret/centrim-docgen/internal/config"
	"github.com/abhay-ecaret/centrim-docgen/internal/diffsum"
	"github.com/abhay-ecaret/centrim-docgen/internal/docgen"
	"github.com/abhay-ecaret/centrim-docgen/internal/gitx"
	"github.com/abhay-ecaret/centrim-docgen/internal/ollama"
	termui "github.com/abhay-ecaret/centrim-docgen/internal/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string
	repoDir    string
	outputFile string
	modelFlag  string
	diffNoFlag int
	diffLimit  int
	watchFlag  bool
)

func versionString() string {
	return fmt.Sprintf("centrim-docgen %s (commit: %s, built: %s)", version, commit, date)
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "centrim-docgen",
		Short: "Generate git commit documentation with a local Ollama model",
		Long: "centrim-docgen pairs each commit's diff with a locally hosted language model\n" +
			"and appends the generated documentation to an append-only Markdown log.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Version = versionString()
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config file (default ~/.config/centrim-docgen/config.toml)")
	rootCmd.Flags().StringVar(&repoDir, "repo", ".", "git repository to document")
	rootCmd.Flags().StringVar(&outputFile, "output", "", "documentation log file (default from config)")
	rootCmd.Flags().StringVar(&modelFlag, "model", "", "Ollama model to use (e.g. 'phi3:medium')")
	rootCmd.Flags().IntVar(&diffNoFlag, "diffno", 0, "number of recent commits to process (default: 1, or 5 on first run)")
	rootCmd.Flags().IntVar(&diffLimit, "diff-limit", 0, "character limit for diff content sent to the model")
	rootCmd.Flags().BoolVar(&watchFlag, "watch", false, "echo the prompt and raw streaming output during generation")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if outputFile != "" {
		cfg.Output.File = outputFile
	}
	if diffLimit > 0 {
		cfg.Limits.DiffLimit = diffLimit
	}

	printer := termui.NewPrinter(cmd.OutOrStdout())

	client := ollama.NewClient(cfg.Ollama.BaseURL, printer)
	client.SetGenerateTimeout(time.Duration(cfg.Ollama.TimeoutSeconds) * time.Second)
	if !watchFlag && term.IsTerminal(int(os.Stdout.Fd())) {
		client.SetSpinner(termui.NewSpinner(os.Stdout))
	}

	runner := gitx.NewRunner(printer)
	repo := gitx.NewRepository(runner, repoDir)
	structurer := diffsum.NewStructurer(repo, diffsum.Limits{
		FileLimit:          cfg.Limits.FileLimit,
		SymbolLimit:        cfg.Limits.SymbolLimit,
		SymbolExcerptLimit: cfg.Limits.SymbolExcerpt,
		FileExcerptLimit:   cfg.Limits.FileExcerpt,
	})

	pipeline := &docgen.Pipeline{
		VCS:        repo,
		Summarizer: structurer,
		Generator:  client,
		Policy:     modelPolicy(cfg, client, printer),
		Printer:    printer,
		LogPath:    cfg.Output.File,
		Model:      modelFlag,
		Count:      diffNoFlag,
		DiffLimit:  cfg.Limits.DiffLimit,
		Watch:      watchFlag,
	}

	// Partial failures are diagnostics, not exit codes: a run that
	// skipped every commit still exits zero.
	pipeline.Run(cmd.Context())
	return nil
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return config.DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "centrim-docgen", "config.toml")
	}
	return config.Load(path)
}

func modelPolicy(cfg *config.Config, store docgen.ModelStore, p *termui.Printer) docgen.ModelPolicy {
	switch cfg.Ollama.ModelPolicy {
	case config.PolicyUnrestricted:
		return docgen.Unrestricted{Store: store, Default: cfg.Ollama.DefaultModel}
	case config.PolicyInteractivePull:
		return docgen.InteractivePull{Store: store, Printer: p}
	default:
		return docgen.AllowListWithDefault{
			Store:   store,
			Printer: p,
			Allowed: cfg.Ollama.AllowedModels,
			Default: cfg.Ollama.DefaultModel,
		}
	}
}
