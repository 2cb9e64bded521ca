package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/vocabkit/internal/config"
	"github.com/example/vocabkit/internal/logger"
	"github.com/example/vocabkit/internal/mastery"
	"github.com/example/vocabkit/internal/scheduler"
	"github.com/example/vocabkit/internal/seed"
	"github.com/example/vocabkit/internal/session"
	"github.com/example/vocabkit/internal/sm2"
	"github.com/example/vocabkit/internal/storage"
	"github.com/example/vocabkit/internal/tracker"
	"github.com/example/vocabkit/pkg/models"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg := config.Load()

	kv, err := storage.OpenSQL(cfg.DBType, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to open storage", "error", err)
	}
	defer kv.Close()

	store := mastery.NewWithCapacity(kv, cfg.Capacity)
	engine := sm2.New()
	builder := session.NewWithSize(store, engine, cfg.SessionSize)

	switch os.Args[1] {
	case "seed":
		runSeed(store, os.Args[2:])
	case "session":
		runSession(builder, os.Args[2:])
	case "review":
		runReview(builder, os.Args[2:])
	case "track":
		runTrack(tracker.New(store), os.Args[2:])
	case "stats":
		runStats(builder)
	case "remind":
		runRemind(builder)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: vocabkit <command> [flags]

Commands:
  seed      import vocabulary from an Excel or CSV file
  session   print the next practice round
  review    apply a review quality score (0-5) to a word
  track     record a right/wrong exercise outcome
  stats     print collection statistics
  remind    run the periodic due-review reminder`)
}

func runSeed(store *mastery.Store, args []string) {
	importConfig := seed.DefaultConfig()
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	fs.StringVar(&importConfig.FilePath, "file", "", "path to the .xlsx or .csv file")
	fs.StringVar(&importConfig.SheetName, "sheet", importConfig.SheetName, "Excel sheet name")
	fs.IntVar(&importConfig.StartRow, "start-row", importConfig.StartRow, "first data row (1-based)")
	fs.Parse(args)

	if importConfig.FilePath == "" {
		fmt.Fprintln(os.Stderr, "seed: -file is required")
		os.Exit(2)
	}

	result, err := seed.Import(store, importConfig)
	if err != nil {
		logger.Fatal("import failed", "error", err)
	}

	fmt.Printf("Processed %d rows: %d created, %d updated, %d skipped\n",
		result.TotalProcessed, result.Created, result.Updated, result.Skipped)
	if result.Evicted > 0 {
		fmt.Printf("Capacity exceeded: %d oldest records evicted\n", result.Evicted)
	}
	for _, e := range result.Errors {
		fmt.Fprintln(os.Stderr, e)
	}
}

func runSession(builder *session.Builder, args []string) {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	count := fs.Int("count", 0, "words per round (0 uses the configured default)")
	fs.Parse(args)

	items := builder.GenerateSession(*count)
	if len(items) == 0 {
		fmt.Println("No words to review yet. Seed or track some vocabulary first.")
		return
	}
	for i, item := range items {
		fmt.Printf("%2d. %s — %s\n", i+1, item.Word, item.Translation)
		if item.Context != "" {
			fmt.Printf("    %s\n", item.Context)
		}
	}
}

func runReview(builder *session.Builder, args []string) {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	word := fs.String("word", "", "the word that was reviewed")
	translation := fs.String("translation", "", "its translation")
	quality := fs.Int("quality", -1, "recall quality, 0 (blackout) to 5 (perfect)")
	fs.Parse(args)

	if *word == "" || *translation == "" || *quality < 0 || *quality > 5 {
		fmt.Fprintln(os.Stderr, "review: -word, -translation and -quality (0-5) are required")
		os.Exit(2)
	}

	id := models.RecordID(*word, *translation)
	err := builder.UpdateAfterReview(id, *quality)
	if errors.Is(err, session.ErrNotFound) {
		fmt.Printf("No record for %q / %q\n", *word, *translation)
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal("review update failed", "error", err)
	}
	fmt.Println("Review recorded.")
}

func runTrack(t *tracker.Tracker, args []string) {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	word := fs.String("word", "", "the word")
	translation := fs.String("translation", "", "its translation")
	category := fs.String("category", "", "grouping category")
	topic := fs.String("topic", "", "grouping topic")
	correct := fs.Bool("correct", false, "whether the answer was correct")
	context := fs.String("context", "", "optional example sentence")
	fs.Parse(args)

	if *word == "" || *translation == "" {
		fmt.Fprintln(os.Stderr, "track: -word and -translation are required")
		os.Exit(2)
	}

	t.TrackWord(*word, *translation, *category, *topic, *correct, *context)
	fmt.Println("Outcome recorded.")
}

func runStats(builder *session.Builder) {
	stats := builder.Stats()
	fmt.Printf("Total words:         %d\n", stats.TotalWords)
	fmt.Printf("Due for review:      %d\n", stats.DueForReview)
	fmt.Printf("Average ease factor: %.2f\n", stats.AverageEaseFactor)
	if stats.NextReviewDate != nil {
		fmt.Printf("Next review date:    %s\n", stats.NextReviewDate.Format("2006-01-02 15:04"))
	}
}

func runRemind(builder *session.Builder) {
	s := scheduler.New(builder, nil)
	s.Start()
	defer s.Stop()
	logger.Info("reminder scheduler started, press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("received signal, shutting down", "signal", sig.String())
}
