package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/wadjakorntonsri/go-smartlink/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-smartlink/pkg/config"
	"github.com/wadjakorntonsri/go-smartlink/pkg/core/domain"
	"github.com/wadjakorntonsri/go-smartlink/pkg/core/services"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")
	resolveCmd := flag.NewFlagSet("resolve", flag.ExitOnError)
	resolveAndroid := resolveCmd.Bool("android", false, "resolve as an Android device")
	resolveMobile := resolveCmd.Bool("mobile", false, "resolve as a mobile device")
	resolvePassword := resolveCmd.String("password", "", "password for protected links")

	if len(os.Args) < 2 {
		fmt.Println("expected 'export', 'import' or 'resolve' subcommands")
		os.Exit(1)
	}

	cfg := config.Load()
	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}

	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		doExport(repo)
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		doImport(repo, *importFile)
	case "resolve":
		resolveCmd.Parse(os.Args[2:])
		if resolveCmd.NArg() < 1 {
			fmt.Println("usage: resolve [-android] [-mobile] [-password pw] <id>")
			os.Exit(1)
		}
		doResolve(cfg, repo, resolveCmd.Arg(0), *resolvePassword, *resolveMobile, *resolveAndroid)
	default:
		fmt.Println("expected 'export', 'import' or 'resolve' subcommands")
		os.Exit(1)
	}
}

func doExport(repo *sqlite.SQLiteRepository) {
	records, err := repo.Dump(context.Background())
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		log.Fatalf("Encode failed: %v", err)
	}
}

func doImport(repo *sqlite.SQLiteRepository, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Read failed: %v", err)
	}

	var records []domain.LinkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatalf("Decode failed: %v", err)
	}

	ctx := context.Background()
	imported := 0
	for i := range records {
		if err := repo.Create(ctx, &records[i]); err != nil {
			log.Printf("Skipping %s: %v", records[i].ID, err)
			continue
		}
		imported++
	}
	fmt.Printf("Imported %d/%d records\n", imported, len(records))
}

// doResolve runs the resolution pipeline from the terminal, driving the
// redirect executor so the timed fallback behavior can be observed.
func doResolve(cfg *config.Config, repo *sqlite.SQLiteRepository, id, password string, mobile, android bool) {
	resolver := services.NewResolverService(repo, cfg.FallbackDelay)
	caps := domain.Capabilities{IsMobile: mobile || android, IsAndroid: android}

	res, err := resolver.Resolve(context.Background(), id, password, password != "", caps, &domain.Scan{LinkID: id, UserAgent: "smartlink-cli"})
	if err != nil {
		log.Fatalf("Resolve failed: %v", err)
	}

	switch res.Outcome {
	case domain.OutcomePasswordRequired:
		if res.PasswordError != "" {
			fmt.Printf("password rejected: %s\n", res.PasswordError)
		} else {
			fmt.Println("password required: pass one with -password")
		}
	case domain.OutcomeUnavailable:
		fmt.Printf("unavailable: %s\n", res.Reason)
	case domain.OutcomeDirectRender:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(res.View)
	case domain.OutcomeExternalRedirect:
		executor := &services.RedirectExecutor{SettleDelay: cfg.SettleDelay}
		handle := executor.Execute(context.Background(), *res.Redirect,
			func(pct int) { fmt.Printf("\rloading %3d%%", pct) },
			func(uri string) { fmt.Printf("\nnavigate -> %s\n", uri) },
		)
		if handle != nil {
			// Wait out the fallback window so the web fallback is visible.
			<-handle.Fired()
		}
	}
}
