package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"guestpulse/internal/adapters/lexicon"
	"guestpulse/internal/adapters/observability"
	redisad "guestpulse/internal/adapters/redis"
	"guestpulse/internal/analytics"
	"guestpulse/internal/app"
	"guestpulse/internal/domain"
	"guestpulse/internal/shared"
	mysqlrepo "guestpulse/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Int("workers", cfg.Workers).
		Int("top_words", cfg.TopWords).
		Msg("analyzer starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	var src domain.LexiconSource
	if cfg.PositiveWordsURL != "" {
		src, err = lexicon.NewHTTPSource(cfg.PositiveWordsURL, cfg.NegativeWordsURL, cfg.LexiconRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize lexicon source")
		}
	} else {
		src = &lexicon.FileSource{
			PositivePath: cfg.PositiveWordsPath,
			NegativePath: cfg.NegativeWordsPath,
		}
	}

	keywords := analytics.DefaultKeywordMap()
	if cfg.KeywordMapPath != "" {
		keywords, err = analytics.LoadKeywordMap(cfg.KeywordMapPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.KeywordMapPath).Msg("failed to load keyword map")
		}
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewAnalysisService(repo, src, cache, analytics.Config{
		Keywords: keywords,
		TopN:     cfg.TopWords,
		Workers:  cfg.Workers,
	})

	run, err := svc.Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("analysis run failed")
	}
	log.Info().
		Str("run_id", run.ID).
		Int("reviews", run.Reviews).
		Dur("duration", run.Duration).
		Msg("analysis completed")
}
