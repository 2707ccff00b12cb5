package bootstrap

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	analyticsinadapter "studytrack/internal/modules/analytics/adapter/in"
	analyticsoutadapter "studytrack/internal/modules/analytics/adapter/out"
	analyticsservice "studytrack/internal/modules/analytics/service"
	analyticsusecase "studytrack/internal/modules/analytics/usecase"
	goalinadapter "studytrack/internal/modules/goal/adapter/in"
	goaloutadapter "studytrack/internal/modules/goal/adapter/out"
	goalout "studytrack/internal/modules/goal/port/out"
	goalservice "studytrack/internal/modules/goal/service"
	goalusecase "studytrack/internal/modules/goal/usecase"
	progressinadapter "studytrack/internal/modules/progress/adapter/in"
	progressoutadapter "studytrack/internal/modules/progress/adapter/out"
	progressservice "studytrack/internal/modules/progress/service"
	progressusecase "studytrack/internal/modules/progress/usecase"
	sessioninadapter "studytrack/internal/modules/session/adapter/in"
	sessionoutadapter "studytrack/internal/modules/session/adapter/out"
	sessionout "studytrack/internal/modules/session/port/out"
	sessionservice "studytrack/internal/modules/session/service"
	sessionusecase "studytrack/internal/modules/session/usecase"
	"studytrack/internal/platform/clock"
	"studytrack/internal/platform/config"
	"studytrack/internal/platform/logging"
	"studytrack/internal/platform/tx"
	uiapp "studytrack/internal/ui/app"
)

type App struct {
	Config       config.Config
	Log          logging.Logger
	SessionCLI   sessioninadapter.CLIHandler
	GoalCLI      goalinadapter.CLIHandler
	ProgressCLI  progressinadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler

	closers []func() error
}

func New(cfg config.Config) (*App, error) {
	log, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("new logger: %w", err)
	}
	clk := clock.SystemClock{Location: cfg.Location}
	// Session appends, goal checks and note writes are read-modify-write; the TUI may overlap them.
	txm := &tx.MutexManager{}

	// The index is derived data; without it every command except reindex still works.
	var (
		sessionIndex sessionout.SessionIndexProjector
		closers      []func() error
	)
	if projector, err := sessionoutadapter.NewSQLiteSessionProjector(cfg.DBPath); err != nil {
		log.Warn(context.Background(), "session index unavailable", "path", cfg.DBPath, "error", err)
	} else {
		sessionIndex = projector
		closers = append(closers, projector.Close)
	}
	sessionSvc := sessionservice.NewSessionService(
		clk,
		cfg.Location,
		log.With("module", "session"),
		sessionoutadapter.NewJSONLSessionLog(cfg.DataDir),
		sessionoutadapter.NewFileSubjectStore(cfg.DataDir),
		sessionoutadapter.NewFileUserStore(cfg.DataDir),
		sessionIndex,
		txm,
	)
	query := sessionusecase.NewQueryInteractor(sessionSvc)

	goalLog := log.With("module", "goal")
	var notifier goalout.Notifier = goaloutadapter.NewLogNotifier(goalLog)
	if cfg.Notify {
		notifier = goaloutadapter.NewDesktopNotifier()
	}
	goalUC := goalusecase.NewInteractor(
		goalservice.NewGoalService(
			clk,
			cfg.Location,
			goalLog,
			goaloutadapter.NewFileGoalStore(cfg.DataDir, cfg.Location),
			goaloutadapter.NewSessionSourceAdapter(query),
			txm,
		),
		notifier,
		goalLog,
	)

	progressUC := progressusecase.NewInteractor(progressservice.NewProgressService(
		clk,
		cfg.Location,
		log.With("module", "progress"),
		progressoutadapter.NewFileNoteStore(cfg.DataDir, cfg.Location),
		progressoutadapter.NewSessionSourceAdapter(query),
		progressoutadapter.NewMarkdownExporter(cfg.DataDir),
		txm,
	))

	sessionUC := sessionusecase.NewInteractor(
		sessionSvc,
		goalUC,
		progressUC,
		sessionoutadapter.NewFileActiveSessionStore(cfg.StatePath),
		log.With("module", "session"),
	)

	analyticsUC := analyticsusecase.NewInteractor(analyticsservice.NewAnalyticsService(
		clk,
		cfg.Location,
		log.With("module", "analytics"),
		analyticsoutadapter.NewSessionSourceAdapter(query),
	))

	return &App{
		Config:       cfg,
		Log:          log,
		SessionCLI:   sessioninadapter.NewCLIHandler(sessionUC, query),
		GoalCLI:      goalinadapter.NewCLIHandler(goalUC),
		ProgressCLI:  progressinadapter.NewCLIHandler(progressUC),
		AnalyticsCLI: analyticsinadapter.NewCLIHandler(analyticsUC),
		closers:      closers,
	}, nil
}

// Close releases the SQLite handle. Safe to call more than once.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Config.User, app.SessionCLI, app.GoalCLI, app.ProgressCLI, app.AnalyticsCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
