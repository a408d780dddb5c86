// Command ingest loads a directory of syllabus documents and a directory of
// past papers into the graph for one owner.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AndrivA89/question-forge/internal/ingestion"
	"github.com/AndrivA89/question-forge/internal/llm"
	"github.com/AndrivA89/question-forge/internal/platform/config"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
	"github.com/AndrivA89/question-forge/internal/repository"
)

var documentExts = []string{".txt", ".md", ".yaml", ".yml", ".json"}

func main() {
	email := flag.String("email", "", "owner email of the ingested syllabi and papers")
	syllabusDir := flag.String("syllabus-dir", "", "directory of syllabus documents")
	pyqDir := flag.String("pyq-dir", "", "directory of past paper documents")
	flag.Parse()

	if *email == "" || (*syllabusDir == "" && *pyqDir == "") {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	report, err := run(cfg, log, *email, *syllabusDir, *pyqDir)
	if err != nil {
		log.Error("ingestion aborted", "error", err)
		log.Sync()
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
	if report.Failed > 0 {
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger, email, syllabusDir, pyqDir string) (ingestion.Report, error) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	syllabusFiles, err := listDir(syllabusDir)
	if err != nil {
		return ingestion.Report{}, err
	}
	pyqFiles, err := listDir(pyqDir)
	if err != nil {
		return ingestion.Report{}, err
	}

	client, err := neo4jdb.New(ctx, cfg.Neo4j, log)
	if err != nil {
		return ingestion.Report{}, err
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			log.Warn("closing neo4j driver failed", "error", err)
		}
	}()
	if err := client.Initialize(ctx); err != nil {
		return ingestion.Report{}, err
	}

	repo := repository.NewCurriculumRepository(client, log, repository.Options{
		MaxDepth: cfg.Graph.MaxDepth,
		LinkMode: cfg.Graph.LinkMode,
	})
	completer := llm.New(cfg.LLM.APIKey,
		llm.WithBaseURL(cfg.LLM.BaseURL),
		llm.WithModel(cfg.LLM.Model),
		llm.WithTimeout(cfg.LLM.Timeout),
	)
	proc := ingestion.NewProcessor(completer, repo, log, cfg.LLM.MaxConcurrent)

	log.Info("ingestion started", "syllabus_files", len(syllabusFiles), "pyq_files", len(pyqFiles))
	return proc.ProcessAll(ctx, email, syllabusFiles, pyqFiles)
}

func listDir(dir string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	files, err := ingestion.ListDocuments(dir, documentExts...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	return files, nil
}
