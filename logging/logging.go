// Package logging configura o logger global (zerolog) a partir de variáveis
// de ambiente: nível, formato json/console e arquivo com rotação opcional.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level     zerolog.Level // default: info
	Format    string        // "json" ou "console" (default "console")
	File      string        // caminho do arquivo de log; vazio = sem arquivo
	MaxSizeMB int           // tamanho máximo antes de rotacionar (default 50)
	MaxAgeDay int           // dias de retenção dos arquivos rotacionados
}

func DefaultConfig() Config {
	return Config{
		Level:     zerolog.InfoLevel,
		Format:    "console",
		MaxSizeMB: 50,
		MaxAgeDay: 7,
	}
}

// ConfigFromEnv lê LOG_LEVEL, LOG_FORMAT, LOG_FILE e LOG_MAX_SIZE_MB.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && lvl != zerolog.NoLevel {
		cfg.Level = lvl
	}

	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "json":
		cfg.Format = "json"
	case "console", "":
		// mantém o default
	}

	cfg.File = strings.TrimSpace(os.Getenv("LOG_FILE"))
	if v := os.Getenv("LOG_MAX_SIZE_MB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSizeMB = n
		}
	}

	return cfg
}

// Setup aplica a configuração no logger global (zerolog/log).
func Setup(cfg Config) {
	var out io.Writer = os.Stderr
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  cfg.MaxSizeMB,
			MaxAge:   cfg.MaxAgeDay,
			Compress: true,
		}
		out = zerolog.MultiLevelWriter(out, rotating)
	}

	log.Logger = zerolog.New(out).Level(cfg.Level).With().Timestamp().Logger()
}
