package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/alexanderramin/studygo/internal/cli"
	"github.com/alexanderramin/studygo/internal/db"
	"github.com/alexanderramin/studygo/internal/intelligence"
	"github.com/alexanderramin/studygo/internal/llm"
	"github.com/alexanderramin/studygo/internal/repository"
	"github.com/alexanderramin/studygo/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	// Determine DB path: env var or default ~/.studygo/studygo.db
	dbPath := os.Getenv("STUDYGO_DB")
	if dbPath == "" {
		var err error
		if dbPath, err = db.DefaultPath(); err != nil {
			return err
		}
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logOut, closeLog, err := openLog(os.Getenv("STUDYGO_LOG"))
	if err != nil {
		return err
	}
	defer closeLog()
	observer := service.NewLogUseCaseObserver(logOut)

	// Wire repositories
	users := repository.NewSQLiteUserRepo(database)
	chats := repository.NewSQLiteChatRepo(database)
	timetables := repository.NewSQLiteTimetableRepo(database)

	app := &cli.App{
		Accounts: service.NewAccountService(users, db.NewSQLiteUnitOfWork(database), service.WithAccountObserver(observer)),
	}

	// Detect interactive terminal for forms, spinners and the chat view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Generation-backed services are only wired when the LLM is enabled.
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(os.Stderr)
		}
		client := llm.NewClient(llmCfg, llmObserver)

		app.Plans = service.NewStudyPlanService(intelligence.NewSchedulePlanner(client), timetables, observer)
		app.Chats = service.NewChatService(intelligence.NewChatGuardrail(client), chats, observer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// openLog resolves STUDYGO_LOG: empty or false disables use-case logging,
// true or "stderr" logs to stderr, anything else is a file to append to.
func openLog(setting string) (io.Writer, func(), error) {
	setting = strings.TrimSpace(setting)
	noop := func() {}
	if setting == "" {
		return nil, noop, nil
	}
	if on, err := strconv.ParseBool(setting); err == nil {
		if !on {
			return nil, noop, nil
		}
		return os.Stderr, noop, nil
	}
	if strings.EqualFold(setting, "stderr") {
		return os.Stderr, noop, nil
	}
	f, err := os.OpenFile(setting, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("opening log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
