package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AndrivA89/question-forge/internal/generation"
	apphttp "github.com/AndrivA89/question-forge/internal/http"
	httpH "github.com/AndrivA89/question-forge/internal/http/handlers"
	"github.com/AndrivA89/question-forge/internal/llm"
	"github.com/AndrivA89/question-forge/internal/platform/cache"
	"github.com/AndrivA89/question-forge/internal/platform/config"
	"github.com/AndrivA89/question-forge/internal/platform/logger"
	"github.com/AndrivA89/question-forge/internal/platform/neo4jdb"
	"github.com/AndrivA89/question-forge/internal/repository"
	"github.com/AndrivA89/question-forge/internal/usecase"
)

func main() {
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

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Neo4j
	client, err := neo4jdb.New(ctx, cfg.Neo4j, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			log.Warn("closing neo4j driver failed", "error", err)
		}
	}()
	if err := client.Initialize(ctx); err != nil {
		return err
	}

	// Redis (optional)
	opts := usecase.AggregatorOptions{Order: cfg.Graph.TopicOrder, CacheTTL: cfg.Cache.ContextTTL}
	if cfg.Cache.URL != "" {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			log.Warn("redis unavailable, outline cache disabled", "error", err)
		} else {
			defer c.Close()
			opts.Cache = c
		}
	}

	repo := repository.NewCurriculumRepository(client, log, repository.Options{
		MaxDepth: cfg.Graph.MaxDepth,
		LinkMode: cfg.Graph.LinkMode,
	})
	aggregator := usecase.NewContextAggregator(repo, log, opts)
	evaluator := usecase.NewPaperEvaluator(repo, log)
	uc := usecase.NewCurriculumUseCase(repo, aggregator, evaluator, log)

	completer := llm.New(cfg.LLM.APIKey,
		llm.WithBaseURL(cfg.LLM.BaseURL),
		llm.WithModel(cfg.LLM.Model),
		llm.WithTimeout(cfg.LLM.Timeout),
	)
	generator := generation.NewGenerator(completer, aggregator, log)

	srv := apphttp.NewServer(cfg.Server.Addr, apphttp.RouterConfig{
		Logger:            log,
		HealthHandler:     httpH.NewHealthHandler(uc),
		GraphHandler:      httpH.NewGraphHandler(uc),
		ContextHandler:    httpH.NewContextHandler(uc),
		EvaluationHandler: httpH.NewEvaluationHandler(uc),
		GenerationHandler: httpH.NewGenerationHandler(generator, log),
	})
	return srv.Run(ctx)
}
