package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/Supp140106/scribe/auth"
	"github.com/Supp140106/scribe/config"
	"github.com/Supp140106/scribe/crypto"
	"github.com/Supp140106/scribe/game"
	"github.com/Supp140106/scribe/history"
	"github.com/Supp140106/scribe/logger"
	"github.com/Supp140106/scribe/migrations"
	"github.com/Supp140106/scribe/notifier"
	"github.com/Supp140106/scribe/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const tokenAge = time.Hour * 24 * 7 // 7 days

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func gameRules(cfg config.GameConfig) game.Rules {
	rules := game.DefaultRules()
	rules.MinPlayers = cfg.MinPlayers
	rules.MaxPlayers = cfg.MaxPlayers
	rules.MaxRounds = cfg.Rounds
	rules.RoundDuration = cfg.RoundDuration
	rules.IntermissionDuration = cfg.IntermissionDuration
	rules.StartDelay = cfg.StartDelay
	rules.DrawerLeftDelay = cfg.DrawerLeftDelay
	rules.ChooseWordTimeout = cfg.ChooseWordTimeout
	rules.FinishedRoomTTL = cfg.FinishedRoomTTL
	return rules
}

func loadWords(path string, minSize int) (*game.WordBank, error) {
	if path == "" {
		return game.DefaultWordBank(), nil
	}
	return game.LoadWordBank(path, minSize)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Setup(cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Dependencies
	if err := migrations.Migrate(cfg.PostgresUrl); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}
	pgRepo, err := storage.NewPostgresRepo(ctx, cfg.PostgresUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("postgres unavailable")
	}
	defer pgRepo.Close()

	tokenManager := crypto.NewJWTManager(cfg.JwtKey, tokenAge)
	authService := auth.NewService(tokenManager, pgRepo)
	authHandler := auth.NewAuthHandler(authService)

	rules := gameRules(cfg.Game)
	words, err := loadWords(cfg.WordsFile, rules.WordChoices)
	if err != nil {
		log.Fatal().Err(err).Msg("vocabulary unavailable")
	}

	var publisher game.GamePublisher
	if cfg.NatsUrl != "" {
		natsPublisher, err := notifier.NewNatsPublisher(cfg.NatsUrl, cfg.NatsSubject)
		if err != nil {
			log.Fatal().Err(err).Msg("nats unavailable")
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
	}

	engine := game.NewEngine(rules, words, pgRepo, publisher)
	engineStarted := make(chan struct{})
	go engine.Run(ctx, engineStarted)
	<-engineStarted

	r := CreateServer(cfg.AllowedOrigins)

	gameHandler := game.NewGameHandler(engine, cfg.AllowedOrigins)
	r.GET("/ws", authHandler.OptionalAuthMiddleware(), gameHandler.SocketHandler)

	historyHandler := history.NewHistoryHandler(pgRepo)
	{
		userGroup := r.Group("/user")
		userGroup.Use(authHandler.RequireAuthMiddleware(time.Second*2), history.NoStore(), gzip.Gzip(gzip.DefaultCompression))
		userGroup.GET("/history", historyHandler.GetHistoryHandler)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().Str("port", cfg.Port).Int("rooms.maxPlayers", rules.MaxPlayers).Msg("server starting")
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}
