package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/finata-app/finata/internal/detect"
	"github.com/finata-app/finata/internal/importer"
	"github.com/finata-app/finata/internal/logger"
	"github.com/finata-app/finata/internal/statement"
	"github.com/finata-app/finata/internal/store/sqlite"
	"github.com/finata-app/finata/internal/ui"
)

const version = "0.1.0"

var (
	versionFlag = flag.Bool("version", false, "Show version")

	inputFile  = flag.String("input", "", "Statement CSV file to import (required)")
	userID     = flag.String("user", "", "User the import is scoped to (required unless -detect)")
	dbPath     = flag.String("db", "finata.db", "SQLite database file")
	cardID     = flag.String("card", "", "Tag imported rows with this card ID")
	detectOnly = flag.Bool("detect", false, "Only detect the issuing institution, import nothing")
	verbose    = flag.Bool("verbose", false, "Show every row error")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `finata - bank statement importer

Usage:
  finata [flags]

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprint(os.Stderr, `
Examples:
  # Import a statement into the local database
  finata -input extrato.csv -user joao

  # Detect which bank produced a file
  finata -input extrato.csv -detect

`)
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("finata version %s\n", version)
		os.Exit(0)
	}

	if *inputFile == "" {
		fmt.Fprintf(os.Stderr, "Error: -input flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}
	if !*detectOnly && *userID == "" {
		fmt.Fprintf(os.Stderr, "Error: -user flag is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	raw, err := os.ReadFile(*inputFile)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *inputFile, err)
	}

	if *detectOnly {
		return runDetect(raw)
	}

	ui.Header("Importing Statement")
	ui.Step(1, 2, fmt.Sprintf("Opening database %s", *dbPath))

	db, err := sqlite.Open(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	ui.Step(2, 2, fmt.Sprintf("Importing %s", *inputFile))

	log := logger.New()
	if !*verbose {
		log = logger.NewWithWriter(nopWriter{})
	}

	outcome, err := importer.New(db, log).Import(context.Background(), raw, importer.Options{
		UserID: *userID,
		CardID: *cardID,
	})
	if err != nil {
		return err
	}

	ui.Success(fmt.Sprintf("%d imported, %d skipped", outcome.ImportedTransactions, len(outcome.RowErrors)))
	if outcome.ImportedCategories > 0 || outcome.ImportedAccounts > 0 {
		ui.Info(fmt.Sprintf("created %d categories, %d accounts", outcome.ImportedCategories, outcome.ImportedAccounts))
	}
	for _, rowErr := range outcome.RowErrors {
		ui.Warning(rowErr)
	}
	return nil
}

func runDetect(raw []byte) error {
	text, err := importer.DecodeText(raw)
	if err != nil {
		return err
	}
	rows, err := statement.Parse(text)
	if err != nil {
		return err
	}

	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	result := detect.Detect(rows[0].Fields, lines)

	ui.Header("Institution Detection")
	ui.Info(fmt.Sprintf("institution: %s (confidence %.2f)", result.Institution, result.Confidence))
	for _, indicator := range result.Indicators {
		ui.Info("  - " + indicator)
	}
	return nil
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
