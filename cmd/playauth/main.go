package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/ftechlab/playauth"
	"github.com/ftechlab/playauth/middleware/jwtware"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := auth.LoadConfig()
	if err != nil {
		return err
	}

	logger := auth.DefaultLogger()

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.GetDatabaseDSN())
	if err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	if err := createSchema(ctx, db); err != nil {
		return err
	}

	tokens, err := auth.NewTokenService(cfg, logger)
	if err != nil {
		// Bad or short signing secret: refuse to start.
		return err
	}

	accountsRepo := auth.NewAccountsRepository(db)
	sessionsRepo := auth.NewTokenSessionsRepository(db)

	credentials := auth.NewCredentialProvider(accountsRepo, auth.BcryptVerifier{}).
		WithLogger(logger)

	auther := auth.NewAuthenticator(credentials, sessionsRepo, tokens).
		WithLogger(logger)

	sweeper := auth.NewSessionSweeper(sessionsRepo, cfg.GetRefreshTokenTTL(), time.Hour).
		WithLogger(logger)
	go sweeper.Run(ctx)

	guard := jwtware.New(jwtware.Config{
		Service:     tokens,
		TokenLookup: cfg.GetTokenLookup(),
		AuthScheme:  cfg.GetAuthScheme(),
		ContextKey:  cfg.GetContextKey(),
		Logger:      logger,
	})

	app := fiber.New(fiber.Config{AppName: "playauth"})

	controller := auth.NewAuthController(auther, credentials, cfg).
		WithLogger(logger)
	controller.RegisterRoutes(app, guard)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.GetHTTPAddr())
	}()

	logger.Info("playauth listening on %s", cfg.GetHTTPAddr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

func createSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*auth.Account)(nil),
		(*auth.TokenSession)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}
