package config

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

func Development() bool {
	development, ok := os.LookupEnv("DEVELOPMENT")
	if !ok {
		return false
	}
	return development != "0"
}

type Logging struct {
	Development bool
	File        string // empty disables the file log
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
}

func intEnv(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return n, nil
}

func NewLogging() (*Logging, error) {
	l := &Logging{
		Development: Development(),
		File:        os.Getenv("LOG_FILE"),
	}
	var err error
	if l.MaxSizeMB, err = intEnv("LOG_MAX_SIZE_MB", 50); err != nil {
		return nil, err
	}
	if l.MaxBackups, err = intEnv("LOG_MAX_BACKUPS", 3); err != nil {
		return nil, err
	}
	if l.MaxAgeDays, err = intEnv("LOG_MAX_AGE_DAYS", 28); err != nil {
		return nil, err
	}
	return l, nil
}

func (l Logging) Level() logrus.Level {
	if l.Development {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}

// Apply configures every given logger: coloured text in development, JSON
// otherwise, plus a rotating JSON file when File is set.
func (l Logging) Apply(out io.Writer, loggers ...*logrus.Logger) error {
	var hook logrus.Hook
	if l.File != "" {
		var err error
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   l.File,
			MaxSize:    l.MaxSizeMB,
			MaxBackups: l.MaxBackups,
			MaxAge:     l.MaxAgeDays,
			Level:      l.Level(),
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to open log file %s: %w", l.File, err)
		}
	}

	for _, log := range loggers {
		log.SetOutput(out)
		log.SetLevel(l.Level())
		if l.Development {
			log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
		} else {
			log.SetFormatter(&logrus.JSONFormatter{})
		}
		if hook != nil {
			log.AddHook(hook)
		}
	}
	return nil
}
