package logger

import (
	"io"
	"os"
	"strings"

	"used-car-pricer/internal/config"

	"github.com/sirupsen/logrus"
)

// Logger оборачивает logrus.Logger
type Logger struct {
	*logrus.Logger
	file *os.File
}

// New создаёт логгер по конфигурации: уровень, формат (json|text) и файл вывода
func New(cfg *config.LoggerConfig) *Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(cfg.Format) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	logger := &Logger{Logger: log}
	log.SetOutput(os.Stderr)
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.WithError(err).Warn("Failed to open log file, using stderr")
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, file))
			logger.file = file
		}
	}

	return logger
}

// Close закрывает файл лога, если он был открыт. Вывод возвращается в stderr.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	l.SetOutput(os.Stderr)
	err := l.file.Close()
	l.file = nil
	return err
}

// NewNop создаёт логгер, который ничего не пишет
func NewNop() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Logger{Logger: log}
}
