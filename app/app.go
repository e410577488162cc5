package app

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"job-market-api/internal/controller"
	"job-market-api/internal/feed"
	"job-market-api/internal/repo"
	"job-market-api/internal/service"
	"job-market-api/pkg/http_server"
	"job-market-api/pkg/logger"
	"job-market-api/pkg/postgres"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/labstack/echo"
)

func marketTablesExist(pg *postgres.Postgres) (bool, error) {
	if err := pg.Database.Ping(); err != nil {
		return false, err
	}

	var id uuid.UUID
	err := pg.Database.QueryRow("select id from job limit 1").Scan(&id)

	return err == nil, nil
}

func runMigrations(postgresDB *postgres.Postgres, databaseName string) {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		slog.Error("creating migration driver", "error", err)
		os.Exit(1)
	}

	tablesExist, err := marketTablesExist(postgresDB)
	if err != nil {
		slog.Error("probing for existing tables", "error", err)
		os.Exit(1)
	}
	if tablesExist {
		return
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		slog.Error("loading migrations", "error", err)
		os.Exit(1)
	}

	if err := migrations.Up(); err != nil {
		if err.Error() == "no change" {
			slog.Info("no change made by migration scripts")
		} else {
			slog.Error("applying migrations", "error", err)
			os.Exit(1)
		}
	}
}

func Run() {
	logger.Init(&logger.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})

	serverAddressEnv := os.Getenv("SERVER_ADDRESS")
	dbConnEnv := os.Getenv("POSTGRES_CONN")
	databaseEnv := os.Getenv("POSTGRES_DATABASE")

	slog.Info("connecting database")
	postgresDB, err := postgres.NewDB(dbConnEnv)
	if err != nil {
		slog.Error("connecting to db", "error", err)
		os.Exit(1)
	}
	defer postgresDB.Close()

	slog.Info("running migrations")
	runMigrations(postgresDB, databaseEnv)

	repositories := repo.NewRepositories(postgresDB)
	changeFeed := feed.New()
	services := service.NewServices(repositories, changeFeed)
	handler := echo.New()

	slog.Info("setup routes")
	controller.SetupRoutesHandlers(handler, services)

	slog.Info("starting server", "address", serverAddressEnv)
	httpServer := http_server.New(handler, serverAddressEnv)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		slog.Info("got signal", "signal", s.String())
	case err = <-httpServer.Notify():
		slog.Error("server stopped", "error", err)
	}

	slog.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		slog.Error("shutdown", "error", err)

		return
	}
	slog.Info("successful shutdown")
}
