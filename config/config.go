package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

var (
	ErrMissingAllowedOrigins = errors.New("missing-allowed-origins")
	ErrMissingPostgresUrl    = errors.New("missing-postgres-url")
	ErrMissingJwtKey         = errors.New("missing-jwt-key")
)

type Config struct {
	Debug          bool
	Port           string
	AllowedOrigins []string
	PostgresUrl    string
	JwtKey         string
	NatsUrl        string
	NatsSubject    string
	WordsFile      string
	Game           GameConfig
}

// GameConfig holds the per-room rules. They are read once at startup and fixed for every room's lifetime.
type GameConfig struct {
	MinPlayers           int
	MaxPlayers           int
	Rounds               int
	RoundDuration        time.Duration
	IntermissionDuration time.Duration
	StartDelay           time.Duration
	DrawerLeftDelay      time.Duration
	ChooseWordTimeout    time.Duration
	FinishedRoomTTL      time.Duration
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		MinPlayers:           4,
		MaxPlayers:           5,
		Rounds:               5,
		RoundDuration:        60 * time.Second,
		IntermissionDuration: 6 * time.Second,
		StartDelay:           1500 * time.Millisecond,
		DrawerLeftDelay:      time.Second,
		ChooseWordTimeout:    15 * time.Second,
		FinishedRoomTTL:      time.Minute,
	}
}

// Load reads the environment (and a .env file when present).
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Debug:       getEnvBool("DEBUG", false),
		Port:        getEnv("PORT", "5000"),
		NatsUrl:     os.Getenv("NATS_URL"),
		NatsSubject: getEnv("NATS_SUBJECT", "scribe.games.finished"),
		WordsFile:   os.Getenv("WORDS_FILE"),
	}

	origins, exists := os.LookupEnv("ALLOWED_ORIGINS")
	if !exists || strings.TrimSpace(origins) == "" {
		return cfg, ErrMissingAllowedOrigins
	}
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	cfg.PostgresUrl, exists = os.LookupEnv("POSTGRES_URL")
	if !exists {
		return cfg, ErrMissingPostgresUrl
	}

	cfg.JwtKey, exists = os.LookupEnv("JWT_KEY")
	if !exists {
		return cfg, ErrMissingJwtKey
	}

	cfg.Game = loadGameConfig()
	return cfg, nil
}

func loadGameConfig() GameConfig {
	def := DefaultGameConfig()
	gc := GameConfig{
		MinPlayers:           getEnvInt("ROOM_MIN_PLAYERS", def.MinPlayers),
		MaxPlayers:           getEnvInt("ROOM_MAX_PLAYERS", def.MaxPlayers),
		Rounds:               getEnvInt("ROUNDS_PER_GAME", def.Rounds),
		RoundDuration:        getEnvDuration("ROUND_DURATION", def.RoundDuration),
		IntermissionDuration: getEnvDuration("INTERMISSION_DURATION", def.IntermissionDuration),
		StartDelay:           getEnvDuration("START_DELAY", def.StartDelay),
		DrawerLeftDelay:      getEnvDuration("DRAWER_LEFT_DELAY", def.DrawerLeftDelay),
		ChooseWordTimeout:    getEnvDuration("CHOOSE_WORD_TIMEOUT", def.ChooseWordTimeout),
		FinishedRoomTTL:      getEnvDuration("FINISHED_ROOM_TTL", def.FinishedRoomTTL),
	}

	if gc.MinPlayers < 2 {
		log.Warn().Int("min_players", gc.MinPlayers).Msg("ROOM_MIN_PLAYERS below 2, using 2")
		gc.MinPlayers = 2
	}
	if gc.MaxPlayers < gc.MinPlayers {
		log.Warn().Int("max_players", gc.MaxPlayers).Int("min_players", gc.MinPlayers).Msg("ROOM_MAX_PLAYERS below minimum, raising it")
		gc.MaxPlayers = gc.MinPlayers
	}
	if gc.Rounds < 1 {
		gc.Rounds = def.Rounds
	}
	return gc
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Msg("invalid bool, using default")
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		log.Warn().Str("key", key).Err(err).Int("default", fallback).Msg("invalid int, using default")
		return fallback
	}
	return i
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		log.Warn().Str("key", key).Str("value", val).Dur("default", fallback).Msg("invalid duration, using default")
		return fallback
	}
	return d
}
