package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"flooring-chatter/internal/catalog"
	"flooring-chatter/internal/config"
	"flooring-chatter/internal/logging"
	"flooring-chatter/internal/session"
	"flooring-chatter/internal/storage"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	catalogPath    string
	transcriptPath string
	noColor        bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:           "chatter",
		Short:         "Flooring product assistant",
		Long:          `chatter answers questions about the flooring catalog: list, filter, product details and cost estimates.`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f)
		},
	}
	cmd.Flags().StringVarP(&f.catalogPath, "catalog", "c", "", "product catalog file (.csv, .json, .yaml); overrides CATALOG_PATH")
	cmd.Flags().StringVarP(&f.transcriptPath, "transcript", "t", "", "file written by the save command; overrides TRANSCRIPT_PATH")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable colored output")
	return cmd
}

func run(ctx context.Context, f flags) error {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	if f.catalogPath != "" {
		cfg.CatalogPath = f.catalogPath
	}
	if f.transcriptPath != "" {
		cfg.TranscriptPath = f.transcriptPath
	}

	logs, err := logging.Setup(logging.Options{
		Path:       cfg.LogFilePath,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = logs.Close()
	}()

	products, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Printf("failed to load catalog: %v", err)
		return errors.Wrap(err, "startup")
	}
	cat := catalog.New(products, catalog.WithPricing(catalog.Pricing{
		MinimumCharge: cfg.MinOrderCharge,
		Threshold:     cfg.MinOrderArea,
	}))

	console, err := session.NewConsole(os.Stdin, os.Stdout, cfg.HistoryFile)
	if err != nil {
		return err
	}
	defer func() {
		_ = console.Close()
	}()

	styled := cfg.NoColor == "" && !f.noColor && term.IsTerminal(int(os.Stdout.Fd()))
	s := session.New(cat, console, os.Stdout, storage.NewFileTranscript(cfg.TranscriptPath),
		session.WithFormatter(session.NewFormatter(os.Stdout, cfg.CurrencySymbol, styled)))
	return s.Run(ctx)
}
