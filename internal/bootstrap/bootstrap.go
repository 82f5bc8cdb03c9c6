package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"notes-assistant/internal/config"
	"notes-assistant/internal/core/ports"
	"notes-assistant/internal/core/usecase"
	"notes-assistant/internal/infrastructure/ai/openai"
	"notes-assistant/internal/infrastructure/extractor"
	"notes-assistant/internal/infrastructure/queue/nats"
	"notes-assistant/internal/infrastructure/repository/postgres"
	"notes-assistant/internal/infrastructure/resilience"
	"notes-assistant/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue ports.SummaryQueue

	UploadUC     ports.AttachmentIngestor
	NotesUC      ports.NoteService
	ChatUC       ports.ChatService
	TasksUC      ports.TaskService
	TranscribeUC ports.Transcriber
	BackfillUC   ports.SummaryBackfiller

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	noteRepo := postgres.NewNoteRepository(db)
	taskRepo := postgres.NewTaskRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init file storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	aiClient := openai.New(openai.Options{
		BaseURL:          cfg.OpenAIBaseURL,
		APIKey:           cfg.OpenAIAPIKey,
		ChatModel:        cfg.OpenAIChatModel,
		SummaryModel:     cfg.OpenAISummaryModel,
		TranscribeModel:  cfg.OpenAITranscribeModel,
		SummaryMaxTokens: cfg.SummaryMaxTokens,
	})
	gateway := openai.NewGateway(aiClient)
	textExtractor := extractor.New()

	backfillExecute := func(ctx context.Context, operation string, fn func(context.Context) error) error {
		return executor.Execute(ctx, operation, fn, func(error) resilience.Classification {
			return resilience.Classification{Retryable: true, RecordFailure: true}
		})
	}

	return &App{
		Config: cfg,
		Logger: logger,
		Queue:  queue,

		UploadUC:     usecase.NewUploadAttachmentUseCase(noteRepo, storage, textExtractor, gateway, queue, logger),
		NotesUC:      usecase.NewNoteQueryUseCase(noteRepo, storage, cfg.SearchLimit),
		ChatUC:       usecase.NewChatUseCase(noteRepo, gateway),
		TasksUC:      usecase.NewTaskUseCase(taskRepo),
		TranscribeUC: usecase.NewTranscribeUseCase(storage, gateway, logger),
		BackfillUC:   usecase.NewSummaryBackfillUseCase(noteRepo, aiClient, backfillExecute, logger),

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
