package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"srebrnasad/internal/config"
	"srebrnasad/internal/db"
	"srebrnasad/internal/importer"
	applerepo "srebrnasad/internal/repository/apple"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to variety CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)
	imp := importer.NewCSVImporter(f, applerepo.NewPostgres(pool, logger))

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d varieties in %s\n", count, time.Since(start).Truncate(time.Millisecond))
}
