// Package logger держит логгеры-синглтоны процесса: slog для
// компонентов и httplog для HTTP-запросов. Настраиваются один раз
// через ConfigureLoggers; до настройки отдаются дефолтные
// JSON-логгеры уровня Info.
package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/go-chi/httplog/v2"
)

type LogLevel string

const (
	LevelLocal LogLevel = "local"
	LevelDev   LogLevel = "dev"
	LevelProd  LogLevel = "prod"
)

// только local включает debug и текстовый вывод
func (lvl LogLevel) slogLevel() slog.Level {
	if lvl == LevelLocal {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

var (
	log            *slog.Logger
	httpLog        *httplog.Logger
	httpLogDefault *httplog.Logger
	once           sync.Once
)

type Option func(*loggerOption)

type loggerOption struct {
	level       slog.Level
	writer      io.Writer
	serviceName string
}

func init() {
	slog.SetDefault(
		slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
	)

	httpLogDefault = newHTTPLogger("default", slog.LevelInfo, os.Stdout)
}

func newHTTPLogger(serviceName string, level slog.Level, w io.Writer) *httplog.Logger {
	return httplog.NewLogger(serviceName, httplog.Options{
		JSON:             true,
		LogLevel:         level,
		Concise:          true,
		RequestHeaders:   false,
		MessageFieldName: "message",
		Writer:           w,
	})
}

// WithServiceName - имя сервиса в записях httplog
func WithServiceName(serviceName string) Option {
	return func(l *loggerOption) {
		l.serviceName = serviceName
	}
}

func WithLevel(lvl LogLevel) Option {
	return func(l *loggerOption) {
		l.level = lvl.slogLevel()
	}
}

func WithWriter(w io.Writer) Option {
	return func(l *loggerOption) {
		l.writer = w
	}
}

func apply(opts ...Option) *loggerOption {
	l := loggerOption{
		level:  slog.LevelInfo,
		writer: os.Stdout,
	}

	for _, fn := range opts {
		fn(&l)
	}
	return &l
}

// ConfigureLoggers настраивает синглтоны, повторные вызовы игнорируются
func ConfigureLoggers(opts ...Option) {
	once.Do(func() {
		l := apply(opts...)

		var handler slog.Handler
		if l.level == slog.LevelDebug {
			handler = slog.NewTextHandler(l.writer, &slog.HandlerOptions{Level: l.level})
		} else {
			handler = slog.NewJSONHandler(l.writer, &slog.HandlerOptions{Level: l.level})
		}

		log = slog.New(handler)
		httpLog = newHTTPLogger(l.serviceName, l.level, l.writer)
	})
}

func Logger() *slog.Logger {
	if log == nil {
		return slog.Default()
	}
	return log
}

func HTTPLogger() *httplog.Logger {
	if httpLog == nil {
		return httpLogDefault
	}
	return httpLog
}

// Error - атрибут ошибки единым ключом во всех записях
func Error(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
