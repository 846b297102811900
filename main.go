package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/vocabbot/internal/bot"
	"github.com/example/vocabbot/internal/config"
	"github.com/example/vocabbot/internal/database"
	"github.com/example/vocabbot/internal/excel"
)

func main() {
	importFile := flag.String("import", "", "import corpus words from an .xlsx or .csv file and exit")
	importSheet := flag.String("sheet", "Sheet1", "sheet name to read when importing from .xlsx")
	flag.Parse()

	// A missing .env is fine; the environment may be set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := database.NewStore(db)

	if *importFile != "" {
		runImport(store, *importFile, *importSheet)
		return
	}

	b, err := bot.New(cfg, store)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()
		b.Stop()
		close(done)
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Bot stopped successfully")
}

// runImport loads corpus words from a spreadsheet and reports the tally.
func runImport(store *database.Store, path, sheet string) {
	importConfig := excel.DefaultImportConfig()
	importConfig.FilePath = path
	importConfig.SheetName = sheet

	importer := excel.New(store.Words)
	result, err := importer.ImportWords(context.Background(), importConfig)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Import finished: processed %d, created %d, skipped %d",
		result.TotalProcessed, result.Created, result.Skipped)
	for _, importErr := range result.Errors {
		log.Printf("Import error: %s", importErr)
	}
}
