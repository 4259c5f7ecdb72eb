package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/vbonduro/fruitchat/internal/chat"
	"github.com/vbonduro/fruitchat/internal/config"
	"github.com/vbonduro/fruitchat/internal/dataset"
	"github.com/vbonduro/fruitchat/internal/db"
	"github.com/vbonduro/fruitchat/internal/domain"
	"github.com/vbonduro/fruitchat/internal/knowledge"
	"github.com/vbonduro/fruitchat/internal/label"
	"github.com/vbonduro/fruitchat/internal/llm"
	"github.com/vbonduro/fruitchat/internal/logging"
	"github.com/vbonduro/fruitchat/internal/query"
	"github.com/vbonduro/fruitchat/internal/session"
	"github.com/vbonduro/fruitchat/internal/speech"
	"github.com/vbonduro/fruitchat/internal/speech/wit"
	"github.com/vbonduro/fruitchat/internal/store"
	"github.com/vbonduro/fruitchat/internal/vision"
	claudevision "github.com/vbonduro/fruitchat/internal/vision/claude"
	ollamavision "github.com/vbonduro/fruitchat/internal/vision/ollama"
	"github.com/vbonduro/fruitchat/internal/wiki"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx := context.Background()

	records, err := loadDataset(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to load fruit dataset", "backend", cfg.DatasetBackend, "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded", "backend", cfg.DatasetBackend, "fruits", len(records))

	gen := newGenerator(cfg, logger)

	classifier := newClassifier(cfg, logger)
	if classifier == nil {
		os.Exit(1)
	}

	console := chat.NewConsole(os.Stdin, os.Stdout)

	wikiClient := wiki.NewClient(cfg.WikipediaHost, gen, logger)
	resolver := knowledge.NewResolver(records, wikiClient, console.Confirm, cfg.ConfirmOnline, logger)

	state := session.New()
	dispatcher := query.NewDispatcher(gen, query.DefaultKeywords(), state, cfg.DedupQuestions, logger)

	var transcriber speech.Transcriber
	if cfg.WitToken != "" {
		transcriber = wit.NewTranscriber(cfg.WitToken)
		logger.Info("voice transcription enabled")
	}

	loop := chat.NewLoop(console, chat.LoopConfig{
		Classifier:     classifier,
		Normalizer:     label.NewNormalizer(label.DefaultAllowList),
		Resolver:       resolver,
		Dispatcher:     dispatcher,
		State:          state,
		Generator:      gen,
		Transcriber:    transcriber,
		TargetLanguage: cfg.TargetLanguage,
	}, logger)

	if err := loop.Run(ctx); err != nil {
		logger.Error("conversation loop error", "error", err)
	}
}

// loadDataset reads the full fruit dataset once at startup; a failure here is
// the program's only fatal error.
func loadDataset(ctx context.Context, cfg *config.Config, logger *slog.Logger) ([]*domain.FruitRecord, error) {
	switch cfg.DatasetBackend {
	case "sqlite":
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := database.Close(); err != nil {
				logger.Error("failed to close database", "error", err)
			}
		}()
		return store.NewFruitStore(database).Load(ctx)
	default:
		return dataset.NewJSONStore(cfg.DatasetPath).Load(ctx)
	}
}

func newClassifier(cfg *config.Config, logger *slog.Logger) vision.Classifier {
	switch cfg.VisionBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Error("CLAUDE_API_KEY is required when VISION_BACKEND=claude")
			return nil
		}
		logger.Info("using Claude vision backend", "model", cfg.ClaudeModel)
		return claudevision.NewClaudeClassifier(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	default:
		logger.Info("using Ollama vision backend", "model", cfg.OllamaVision)
		return ollamavision.NewOllamaClassifier(cfg.OllamaHost, cfg.OllamaVision)
	}
}

func newGenerator(cfg *config.Config, logger *slog.Logger) llm.Generator {
	switch cfg.LLMBackend {
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			logger.Warn("CLAUDE_API_KEY not set; general questions will get a canned answer")
			return nil
		}
		logger.Info("using Claude language backend", "model", cfg.ClaudeModel)
		return llm.NewClaudeGenerator(cfg.ClaudeAPIKey, cfg.ClaudeModel)
	default:
		logger.Info("using Ollama language backend", "model", cfg.OllamaModel)
		return llm.NewOllamaGenerator(cfg.OllamaHost, cfg.OllamaModel)
	}
}
