package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/docqa"
	"github.com/fwojciec/docqa/corpus"
	"github.com/fwojciec/docqa/docx"
	"github.com/fwojciec/docqa/gemini"
	"github.com/fwojciec/docqa/goquery"
	qahttp "github.com/fwojciec/docqa/http"
	"github.com/fwojciec/docqa/index"
	"github.com/fwojciec/docqa/intent"
	"github.com/fwojciec/docqa/langchaingo"
	"github.com/fwojciec/docqa/load"
	"github.com/fwojciec/docqa/pdf"
	"github.com/fwojciec/docqa/readability"
	qaslog "github.com/fwojciec/docqa/slog"
	"github.com/fwojciec/docqa/sqlite"
	"github.com/fwojciec/docqa/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the catalog. Opened by Run().
	DB *sqlite.DB

	// Providers for end-to-end testing. When nil they are built from config.
	Embedder docqa.Embedder
	Asker    docqa.Asker
	Entities docqa.EntityExtractor
	Fetcher  docqa.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docqa"),
		kong.Description("Semantic search and question answering over local documents and web pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docqa --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(cli.Config)
	if err != nil {
		return err
	}
	cli.override(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(stderr, cli.Verbose)
	deps.Config = cfg
	deps.Logger = logger

	cmd := strings.Fields(kongCtx.Command())[0]

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = qahttp.NewFetcher(qahttp.WithTimeout(cfg.Fetch.Timeout), qahttp.WithUserAgent(cfg.Fetch.UserAgent))
	}
	fetcher = qaslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	deps.Corpora = &corpus.Manager{
		Loader:   newLoader(fetcher, cfg, logger),
		CacheDir: cfg.CacheDir,
		Logger:   logger,
	}

	if cmd == "sentences" {
		return kongCtx.Run(deps)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(cfg.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCQA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cfg.DBPath, err)
	}
	defer m.Close()

	deps.Corpora.Catalog = sqlite.NewCorpusService(m.DB)
	deps.Corpora.Store = sqlite.NewDocumentService(m.DB)

	if cmd == "index" || cmd == "search" || cmd == "ask" {
		if err := m.wireProviders(ctx, cfg, cmd == "ask", stderr); err != nil {
			return err
		}

		embedder := qaslog.NewLoggingEmbedder(m.Embedder, logger)
		idx := qaslog.NewLoggingIndex(index.New(embedder), logger)
		deps.Index = idx
		deps.Corpora.Index = idx
		deps.Corpora.Model = embedder.Model()

		if cmd == "ask" {
			deps.Executor = &intent.Executor{Entities: m.Entities, Asker: m.Asker, Logger: logger}
			if cfg.Provider == ProviderGemini {
				tokens, err := gemini.NewTokenCounter(cfg.AnswerModel)
				if docqa.ErrorCode(err) == docqa.EINVALID {
					logger.Debug("no local tokenizer for answer model, using default", "model", cfg.AnswerModel)
					tokens, err = gemini.NewTokenCounter("")
				}
				if err != nil {
					return fmt.Errorf("failed to create token counter: %w", err)
				}
				deps.Tokens = tokens
			}
		}
	}

	return kongCtx.Run(deps)
}

// override applies global flags on top of the loaded config.
func (c *CLI) override(cfg *Config) {
	if c.DB != "" {
		cfg.DBPath = c.DB
	}
	if c.CacheDir != "" {
		cfg.CacheDir = c.CacheDir
	}
	if c.Provider != "" {
		cfg.Provider = strings.ToLower(c.Provider)
		if cfg.Provider != ProviderGemini && cfg.EmbeddingModel == gemini.DefaultEmbeddingModel {
			cfg.EmbeddingModel = ""
			cfg.AnswerModel = ""
		}
		applyDefaults(cfg)
	}
}

// wireProviders builds the embedder, and for questions the asker and entity
// extractor, unless they were injected.
func (m *Main) wireProviders(ctx context.Context, cfg *Config, ask bool, stderr io.Writer) error {
	if m.Embedder != nil {
		return nil
	}

	progress := &progressEmbedder{w: stderr}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return docqa.Errorf(docqa.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		opts := []gemini.EmbedderOption{
			gemini.WithConcurrency(cfg.Concurrency),
			gemini.WithProgress(progress.add),
		}
		if cfg.EmbeddingDim > 0 {
			opts = append(opts, gemini.WithDimension(int32(cfg.EmbeddingDim)))
		}
		progress.Embedder = gemini.NewEmbedder(client, cfg.EmbeddingModel, opts...)
		m.Embedder = progress
		if ask {
			if m.Asker == nil {
				m.Asker = gemini.NewAsker(client, cfg.AnswerModel)
			}
			if m.Entities == nil {
				m.Entities = gemini.NewEntityExtractor(client, cfg.AnswerModel)
			}
		}
	default:
		lc := langchaingo.Config{
			Provider:       cfg.Provider,
			BaseURL:        cfg.BaseURL,
			Token:          cfg.OpenAIAPIKey,
			EmbeddingModel: cfg.EmbeddingModel,
			Model:          cfg.AnswerModel,
		}
		embedder, err := langchaingo.NewEmbedderFromConfig(lc)
		if err != nil {
			return fmt.Errorf("failed to create %s embedder: %w", cfg.Provider, err)
		}
		progress.Embedder = embedder
		m.Embedder = progress
		if ask && m.Asker == nil {
			asker, err := langchaingo.NewAskerFromConfig(lc)
			if err != nil {
				return fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
			}
			m.Asker = asker
		}
	}
	return nil
}

func newLoader(fetcher docqa.Fetcher, cfg *Config, logger *slog.Logger) *load.Loader {
	return &load.Loader{
		Fetcher: fetcher,
		Extractors: []docqa.Extractor{
			trafilatura.NewExtractor(),
			readability.NewExtractor(),
		},
		Converter: goquery.NewTextConverter(),
		Files: map[string]docqa.FileExtractor{
			docqa.ExtPDF:  pdf.NewExtractor(),
			docqa.ExtDOCX: docx.NewExtractor(),
		},
		Logger:      logger,
		Concurrency: cfg.Concurrency,
	}
}

// newLogger logs warnings to w, or everything when verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
