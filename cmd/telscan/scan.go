package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/nao1215/telscan/internal/config"
	"github.com/nao1215/telscan/internal/crawler"
	"github.com/nao1215/telscan/internal/log"
	"github.com/nao1215/telscan/internal/model"
	"github.com/nao1215/telscan/internal/phone"
	"github.com/nao1215/telscan/internal/pipeline"
	"github.com/nao1215/telscan/internal/prompt"
	"github.com/nao1215/telscan/internal/report"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Audit the tel: links of one or more pages",
		Long: `Scan fetches a page, finds every tel: link on it, and compares each
link with the correct phone numbers of the site.

Without arguments, scan asks for the reference numbers (one per line, an
empty line finishes) and then for the URL. The result is printed and saved
to a spreadsheet where Pass rows are green, Warning rows yellow and
Critical Mistake rows red.

Examples:
  # Interactive session
  telscan scan

  # Reference numbers and URL from the command line
  telscan scan -r 03-1234-5678 -r 0120-123-456 https://www.example.co.jp/contact

  # Several pages at once, aggregated into one spreadsheet
  telscan scan -r 03-1234-5678 https://example.co.jp/ https://example.co.jp/access

  # Markdown summary on stdout, spreadsheet at a custom path
  telscan scan -m -o reports/contact.xlsx https://www.example.co.jp/contact

Configuration file (.telscan) example:
  sites:
    www.example.co.jp:
      references:
        - "03-1234-5678"
      cookie: "session=abc123"`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	cmd.Flags().StringArrayP("reference", "r", nil,
		"Reference phone number (repeatable); skips the reference prompt")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .telscan in current or home directory)")
	cmd.Flags().StringP("output", "o", filepath.Join(config.DefaultOutputDir, config.DefaultOutputFile),
		"Spreadsheet path (creates directories if needed)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each page request")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of pages fetched concurrently")
	cmd.Flags().BoolP("json", "j", false,
		"Print the result as JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Print the result as Markdown (mutually exclusive with --json)")
	cmd.Flags().Bool("no-interactive", false,
		"Never prompt; use only flags, arguments and the configuration file")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(cmd.ErrOrStderr(), cfg.Verbose)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newScanSession(cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), logger).run(ctx)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.References, err = cmd.Flags().GetStringArray("reference")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.NoInteractive, err = cmd.Flags().GetBool("no-interactive")
	if err != nil {
		return nil, err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	cfg.SetOutputPath(output)

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// A missing file is only an error when its path was given explicitly.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	switch {
	case configPath != "":
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	case cfg.ConfigFilePath != "":
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{Sites: make(map[string]config.SiteConfig)}
	}

	cfg.Targets = args

	return cfg, nil
}

// scanSession is one run of the scan command.
type scanSession struct {
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	status io.Writer
	logger *slog.Logger
}

// newScanSession creates a session. Prompts and progress messages go to
// stdout, or to stderr when stdout carries JSON or Markdown.
func newScanSession(cfg *config.Config, in io.Reader, out, errOut io.Writer, logger *slog.Logger) *scanSession {
	status := out
	if cfg.JSONReport || cfg.MarkdownReport {
		status = errOut
	}
	return &scanSession{
		cfg:    cfg,
		in:     in,
		out:    out,
		status: status,
		logger: logger,
	}
}

// run collects the inputs, audits every target and writes the reports.
// Input, fetch and sink problems are reported and the run still succeeds.
func (s *scanSession) run(ctx context.Context) error {
	prompter := prompt.New(s.in, s.status)

	base := phone.NewReferenceSet()
	if len(s.cfg.References) > 0 {
		if _, err := prompter.AddReferences(base, s.cfg.References...); err != nil {
			s.logger.Warn("failed to add reference numbers", "error", err)
		}
	} else if !s.cfg.NoInteractive {
		if _, err := prompter.ReadReferences(base); err != nil {
			s.logger.Warn("failed to read reference numbers", "error", err)
		}
	}

	targets := s.cfg.Targets
	if len(targets) == 0 && !s.cfg.NoInteractive {
		url, err := prompter.ReadURL()
		if err != nil {
			s.logger.Warn("failed to read URL", "error", err)
		}
		if url != "" {
			targets = []string{url}
		}
	}
	if len(targets) == 0 {
		fmt.Fprintln(s.status, "No URL entered. Nothing to scan.")
		fmt.Fprintln(s.status, "No data to export.")
		return nil
	}

	refs := make(map[string]*model.ReferenceSet, len(targets))
	classified := false
	for _, url := range targets {
		refs[url] = s.referencesFor(base, url)
		if refs[url].Len() > 0 {
			classified = true
		}
	}
	if !classified {
		fmt.Fprintln(s.status, "No master phone numbers provided. Links will be reported as N/A.")
	}

	bp := pipeline.NewBatchProcessor(
		func(url string) *pipeline.Pipeline {
			return s.newPipeline(url, refs[url])
		},
		pipeline.WithConcurrency(s.cfg.BatchSize),
		pipeline.WithBatchLogger(s.logger),
	)

	audits, err := bp.ProcessBatch(ctx, targets)
	if err != nil {
		s.logger.Warn("scan interrupted", "error", err)
	}

	for _, a := range audits {
		if a != nil && a.FetchError != "" {
			fmt.Fprintf(s.status, "Error fetching URL %s: %s\n", a.URL, a.FetchError)
		}
	}

	table := report.BuildFromAudits(audits)
	s.writeResult(table)
	s.writeSpreadsheet(table)

	return nil
}

// referencesFor returns base followed by the configured references of
// the site of url.
func (s *scanSession) referencesFor(base *model.ReferenceSet, url string) *model.ReferenceSet {
	set := phone.NewReferenceSet()
	for _, v := range base.Values() {
		_ = set.AddCanonical(v)
	}

	site := s.cfg.SiteConfigs.SiteConfigForURL(url)
	for _, raw := range site.References {
		if canonical, err := set.Add(raw); err != nil {
			s.logger.Debug("skipped configured reference",
				"url", url,
				"reference", raw,
				"normalized", canonical,
				"error", err,
			)
		}
	}

	return set
}

// newPipeline builds the audit pipeline for url with its site settings.
func (s *scanSession) newPipeline(url string, refs *model.ReferenceSet) *pipeline.Pipeline {
	site := s.cfg.SiteConfigs.SiteConfigForURL(url)
	s.logger.Debug("site configuration",
		"url", url,
		"references", refs.Values(),
		"cookie", site.Cookie,
		"headers", site.Headers,
	)

	opts := []crawler.FetcherOption{
		crawler.WithTimeout(s.cfg.Timeout),
		crawler.WithUserAgent(s.cfg.UserAgent),
		crawler.WithMaxBodySize(s.cfg.MaxBodySize),
	}
	if len(site.Headers) > 0 {
		opts = append(opts, crawler.WithHeaders(site.Headers))
	}
	if site.Cookie != "" {
		opts = append(opts, crawler.WithCookie(site.Cookie))
	}

	return pipeline.DefaultPipeline(
		crawler.NewFetcher(opts...),
		crawler.NewExtractor(),
		refs,
		pipeline.WithLogger(s.logger),
		pipeline.WithContinueOnError(true),
	)
}

// writeResult prints the table in the selected stdout format.
func (s *scanSession) writeResult(table *report.Table) {
	var w report.Writer
	switch {
	case s.cfg.JSONReport:
		w = report.NewJSONWriter(s.out, report.WithPrettyPrint())
	case s.cfg.MarkdownReport:
		w = report.NewMarkdownWriter(s.out)
	default:
		w = report.NewSimpleWriter(s.out)
	}

	if _, err := w.Write(table); err != nil {
		s.logger.Error("failed to write result", "error", err)
	}
}

// writeSpreadsheet saves the table as xlsx. A failure is reported and
// does not end the session with an error.
func (s *scanSession) writeSpreadsheet(table *report.Table) {
	path := s.cfg.OutputPath()

	n, err := report.NewXLSXWriter(path).Write(table)
	if err != nil {
		s.logger.Error("failed to save spreadsheet", "path", path, "error", err)
		fmt.Fprintf(s.status, "Error saving Excel file '%s': %v\n", path, err)
		return
	}

	s.logger.Debug("spreadsheet saved", "path", path, "bytes", n)
	fmt.Fprintf(s.status, "\nData successfully exported to %s\n", path)
}
