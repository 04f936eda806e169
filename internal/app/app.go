package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"arty/backend/features/interview"
	"arty/backend/features/job"
	"arty/backend/features/question"
	"arty/backend/features/stats"
	"arty/backend/features/study"
	"arty/backend/internal/config"
	"arty/backend/internal/fetch"
	"arty/backend/internal/generate"
	"arty/backend/internal/middleware"
	"arty/backend/internal/settings"
	"arty/backend/internal/worker"
)

// TaskPublisher publishes task messages to NSQ.
type TaskPublisher interface {
	Publish(topic string, body []byte) error
}

type App struct {
	Handler          http.Handler
	InterviewService *interview.Service
	GenerateConsumer *worker.GenerateConsumer

	port int
}

func New(
	cfg *config.Config,
	db *sql.DB,
	taskPub TaskPublisher,
	synth *generate.Synthesizer,
	fetcher *fetch.Fetcher,
	logger *slog.Logger,
) (*App, error) {

	// Feature: Settings
	settingsRepo := settings.NewPostgresRepo(db)
	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(settingsService)

	// Feature: Question (persistence only, no HTTP surface of its own)
	questionRepo := question.NewPostgresRepo(db)

	// Feature: Interview
	interviewRepo := interview.NewPostgresRepo(db)
	interviewService := interview.NewService(interviewRepo, questionRepo, taskPub, settingsService)
	interviewHandler := interview.NewHandler(interviewService)

	// Feature: Job
	jobRepo := job.NewPostgresRepo(db)
	jobService := job.NewService(jobRepo, taskPub, logger)
	jobHandler := job.NewHandler(jobService)

	// Feature: Stats
	statsHandler := stats.NewHandler(interviewRepo, questionRepo, jobRepo)

	// Generation pipeline
	auditLogger, err := generate.NewFileGenerationLogger(cfg.GenerationLogPath)
	if err != nil {
		slog.Warn("failed to create generation logger, falling back to stdout", "error", err)
		auditLogger = generate.NewGenerationLogger(os.Stdout)
	}

	// Fetch limits are re-read from settings per fetch, so PUT /settings
	// changes take effect without a restart.
	dynamicFetcher := fetch.NewDynamicFetcher(fetcher, settingsService)

	corpusBuilder := generate.NewCorpusBuilder(dynamicFetcher)
	questionStore := &questionStoreAdapter{repo: questionRepo}
	generator := generate.NewGenerator(corpusBuilder, synth, questionStore, auditLogger, cfg.FlushSize, cfg.GenSeed)

	// Feature: Study (on-demand Q&A pairs, no persistence)
	studyHandler := study.NewHandler(generator)

	// Worker (Generate Consumer) Setup
	generateConsumer := worker.NewGenerateConsumer(generator, interviewRepo, jobRepo, settingsService)

	// Middleware: CORS
	enableCORS := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next(w, r)
		}
	}

	// Routes
	mux := http.NewServeMux()

	mux.Handle("POST /interviews", middleware.CorrelationID(enableCORS(interviewHandler.Create)))
	mux.Handle("GET /interviews", middleware.CorrelationID(enableCORS(interviewHandler.List)))
	mux.Handle("GET /interviews/{id}", middleware.CorrelationID(enableCORS(interviewHandler.Get)))
	mux.Handle("DELETE /interviews/{id}", middleware.CorrelationID(enableCORS(interviewHandler.Delete)))
	mux.Handle("POST /interviews/{id}/generate", middleware.CorrelationID(enableCORS(interviewHandler.Regenerate)))
	mux.Handle("GET /interviews/{id}/questions", middleware.CorrelationID(enableCORS(interviewHandler.ListQuestions)))

	mux.Handle("POST /study/pairs", middleware.CorrelationID(enableCORS(studyHandler.ComposePairs)))

	mux.Handle("GET /settings", middleware.CorrelationID(enableCORS(settingsHandler.GetSettings)))
	mux.Handle("PUT /settings", middleware.CorrelationID(enableCORS(settingsHandler.UpdateSettings)))

	mux.Handle("GET /jobs/failed", middleware.CorrelationID(enableCORS(jobHandler.List)))
	mux.Handle("POST /jobs/{id}/retry", middleware.CorrelationID(enableCORS(jobHandler.Retry)))

	mux.Handle("GET /stats", middleware.CorrelationID(enableCORS(statsHandler.GetStats)))

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	return &App{
		Handler:          mux,
		InterviewService: interviewService,
		GenerateConsumer: generateConsumer,
		port:             cfg.ServerPort,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", a.port),
		Handler: a.Handler,
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down server...")
		if err := srv.Shutdown(context.Background()); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("server starting", "port", a.port)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// questionStoreAdapter bridges the generation pipeline's flush contract to
// the question repository.
type questionStoreAdapter struct {
	repo question.Repository
}

func (a *questionStoreAdapter) InsertBatch(ctx context.Context, records []generate.Question, interviewID, topic string) error {
	rows := make([]question.Question, 0, len(records))
	for _, rec := range records {
		rows = append(rows, question.Question{
			InterviewID: interviewID,
			Topic:       rec.Topic,
			Text:        rec.Text,
			SourceURL:   rec.SourceIdentifier,
		})
	}
	return a.repo.InsertBatch(ctx, rows)
}
