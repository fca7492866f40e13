package db

import (
	"database/sql"
	"fmt"

	"storefront/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

func NewDB(dsn string, logger *zap.Logger) (*sql.DB, error) {
	conn, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error("Failed to open DB connection", zap.Error(err))
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		logger.Error("Failed to ping DB", zap.Error(err))
		return nil, err
	}
	logger.Info("DB is ready")
	return conn, nil
}

type ZapGooseAdapter struct {
	*zap.Logger
}

func (z *ZapGooseAdapter) Fatalf(format string, v ...any) {
	z.Fatal(fmt.Sprintf(format, v...))
}

func (z *ZapGooseAdapter) Printf(format string, v ...any) {
	z.Info(fmt.Sprintf(format, v...))
}

func RunMigrations(conn *sql.DB, logger *zap.Logger) {
	goose.SetLogger(&ZapGooseAdapter{Logger: logger})

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal("Failed to set database dialect", zap.Error(err))
	}

	goose.SetBaseFS(migrations.EmbedFS)

	if err := goose.Up(conn, "."); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations applied successfully")
}
