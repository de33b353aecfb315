package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Lexicon: local word lists by default, HTTP mirror when URLs are set.
	PositiveWordsPath string
	NegativeWordsPath string
	PositiveWordsURL  string
	NegativeWordsURL  string
	LexiconRPS        int

	KeywordMapPath string
	Workers        int
	TopWords       int
	CacheTTL       time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/guestpulse?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),

		PositiveWordsPath: env("POSITIVE_WORDS_PATH", "data/positive-words.txt"),
		NegativeWordsPath: env("NEGATIVE_WORDS_PATH", "data/negative-words.txt"),
		PositiveWordsURL:  env("POSITIVE_WORDS_URL", ""),
		NegativeWordsURL:  env("NEGATIVE_WORDS_URL", ""),
		LexiconRPS:        atoi("LEXICON_RPS", 2),

		KeywordMapPath: env("KEYWORD_MAP_PATH", ""),
		Workers:        atoi("ANALYZE_WORKERS", 8),
		TopWords:       atoi("TOP_WORDS", 15),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.PositiveWordsURL == "" && c.PositiveWordsPath == "" {
		log.Warn().Msg("no positive word list configured")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
