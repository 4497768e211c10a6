package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	TelegramBotToken string // required
	TelegramChatID   string // required
	SlackWebhook     string // optional second channel

	URLsFile   string // plain-text URL list, one per line
	StatusFile string // JSON status persistence (file store)

	DatabaseURL string // when set, Postgres store is used instead of the file

	CheckInterval time.Duration // time between cycles
	ProbeTimeout  time.Duration // per-probe bound
	ProbePause    time.Duration // pause between successive probes in a cycle
	RetryAttempts int           // probe attempts before a result counts
	RetryBackoff  time.Duration // backoff between probe attempts

	LogDir string

	// Optional read-only status API.
	StatusAddr    string
	PublicAPIKeys []string
	StatusRPM     int
	StatusBurst   int
}

func FromEnv() Config {
	urls := os.Getenv("URLS_FILE")
	if urls == "" {
		urls = "./urls.txt"
	}

	statusFile := os.Getenv("STATUS_FILE")
	if statusFile == "" {
		statusFile = "./website-status.json"
	}

	logDir := os.Getenv("LOG_DIR")
	if logDir == "" {
		logDir = "logs"
	}

	interval := 5 * time.Minute
	if v := os.Getenv("CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			interval = d
		}
	}

	return Config{
		TelegramBotToken: strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
		TelegramChatID:   strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
		SlackWebhook:     strings.TrimSpace(os.Getenv("SLACK_WEBHOOK")),

		URLsFile:    urls,
		StatusFile:  statusFile,
		DatabaseURL: os.Getenv("DATABASE_URL"),

		CheckInterval: interval,
		ProbeTimeout:  envMillis("PROBE_TIMEOUT_MS", 5000),
		ProbePause:    envMillis("PROBE_PAUSE_MS", 250),
		RetryAttempts: envInt("RETRY_ATTEMPTS", 1),
		RetryBackoff:  envMillis("RETRY_BACKOFF_MS", 300),

		LogDir: logDir,

		StatusAddr:    os.Getenv("STATUS_ADDR"),
		PublicAPIKeys: splitKeys(os.Getenv("PUBLIC_API_KEYS")),
		StatusRPM:     envInt("STATUS_RPM", 120),
		StatusBurst:   envInt("STATUS_BURST", 60),
	}
}

// Validate reports fatal startup problems. Missing notification
// credentials abort the process before any scheduling begins.
func (c Config) Validate() error {
	if c.TelegramBotToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	if c.TelegramChatID == "" {
		return errors.New("TELEGRAM_CHAT_ID is required")
	}
	return nil
}

func envInt(name string, def int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envMillis(name string, def int) time.Duration {
	ms := def
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			ms = n
		}
	}
	return time.Duration(ms) * time.Millisecond
}

func splitKeys(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
