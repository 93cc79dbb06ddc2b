package internal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// InitLogger configures the package-level logrus logger.
// Diagnostics go to stderr unless logfile is set; they never share the report sink.
func InitLogger(logfile, level string) error {
	if level == "" {
		level = defaultLogLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	var out io.Writer = os.Stderr
	tty := isatty.IsTerminal(os.Stderr.Fd())
	if logfile != "" {
		file, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", logfile, err)
		}
		out = file
		tty = false
	}

	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:   tty,
		DisableColors: !tty,
		FullTimestamp: true,
		DisableQuote:  true,
		PadLevelText:  true,
	})
	logrus.SetOutput(out)
	logrus.SetLevel(lvl)
	return nil
}
