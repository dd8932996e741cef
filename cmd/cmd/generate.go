package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"blogsmith/internal/article"
	"blogsmith/internal/config"
	"blogsmith/internal/document"
	"blogsmith/internal/illustrate"
	"blogsmith/internal/ledger"
	"blogsmith/internal/logger"
	"blogsmith/internal/pipeline"
	"blogsmith/internal/scrape"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Collect snippets for search terms and generate illustrated blog posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(in io.Reader, out io.Writer) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	logger.SetDebug(cfg.App.Debug)

	terms := readSearchTerms(in, out)
	if len(terms) == 0 {
		fmt.Fprintln(out, "No search terms provided. Exiting.")
		return nil
	}

	ctx := context.Background()

	textClient, err := article.NewClient(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model)
	if err != nil {
		return fmt.Errorf("failed to set up text service: %w", err)
	}

	var images pipeline.IllustrationGenerator
	if cfg.Images.APIToken != "" {
		images = illustrate.NewGenerator(cfg.Images.APIToken, cfg.Images.ModelURL, cfg.Images.Directory)
	} else {
		logger.Warn("No image service token configured, documents will have no illustrations")
	}

	session, err := scrape.NewSession(cfg.Scrape.Headless)
	if err != nil {
		return fmt.Errorf("failed to start scraping session: %w", err)
	}
	defer session.Close()

	if err := session.Login(cfg.Scrape.Username, cfg.Scrape.Password); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	if err := session.Search(terms); err != nil {
		return fmt.Errorf("failed to open search: %w", err)
	}

	p := &pipeline.Pipeline{
		Source:        session,
		Ledger:        ledger.New(cfg.Ledger.Path),
		Articles:      article.NewGenerator(textClient, textClient.ModelName()),
		Illustrations: images,
		NewWriter:     writerFactory(cfg.Output.Format),
		OutputDir:     cfg.Output.Directory,
	}
	if err := p.Run(ctx, terms); err != nil {
		return err
	}

	fmt.Fprintln(out, "Blog generation complete. Check the output directory for new files.")
	return nil
}

// readSearchTerms collects search terms from the operator, one per line,
// terminated by a blank line.
func readSearchTerms(in io.Reader, out io.Writer) []string {
	fmt.Fprintln(out, "Enter search terms (one per line, blank line to finish):")

	var terms []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		term := strings.TrimSpace(scanner.Text())
		if term == "" {
			break
		}
		terms = append(terms, term)
	}
	return terms
}

// writerFactory returns a constructor for the configured document format.
func writerFactory(format string) func() document.Writer {
	if format == "html" {
		return func() document.Writer { return document.NewHTMLWriter() }
	}
	return func() document.Writer { return document.NewMarkdownWriter() }
}
