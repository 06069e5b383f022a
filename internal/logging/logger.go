package logging

import (
	"io"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool
	Environment   string
	SentryDSN     string
	// Stdout is where console logs go. Defaults to os.Stderr, since stdout
	// carries command output and the MCP stdio transport.
	Stdout io.Writer
}

// Setup configures the standard logrus logger. The returned func flushes
// pending Sentry events and closes the log file.
func Setup(params LoggerSetupParams) func() {
	console := params.Stdout
	if console == nil {
		console = os.Stderr
	}

	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	closers := []func(){}
	if params.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         params.SentryDSN,
			Environment: params.Environment,
		})
		if err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		} else {
			logrus.AddHook(NewSentryHook([]logrus.Level{
				logrus.PanicLevel,
				logrus.FatalLevel,
				logrus.ErrorLevel,
			}))
			closers = append(closers, func() { sentry.Flush(sentryFlushTimeout) })
			logrus.Debug("sentry set up")
		}
	}

	if params.LogFileName == "" {
		logrus.SetOutput(console)
		return runAll(closers)
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:  params.LogFileName,
		MaxSize:   50,    // megabytes
		LocalTime: false, // UTC
		Compress:  true,
	}
	closers = append(closers, func() { _ = lumberJackLogger.Close() })

	if params.LogToStdout {
		logrus.SetOutput(io.MultiWriter(console, lumberJackLogger))
	} else {
		logrus.SetOutput(lumberJackLogger)
	}
	return runAll(closers)
}

func runAll(fns []func()) func() {
	return func() {
		for _, fn := range fns {
			fn()
		}
	}
}

// GetLevel parses a level name. Unknown names fall back to info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
