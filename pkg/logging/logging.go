package logging

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

func Component(name string) *logrus.Entry {
	return logrus.WithField("component", name)
}

// SetupLogging configures the standard logrus logger. When logPath is set,
// output goes to stderr and to a size-rotated file.
func SetupLogging(verbose bool, logPath string) {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	if logPath == "" {
		logrus.SetOutput(os.Stderr)
		return
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		logrus.SetOutput(os.Stderr)
		logrus.Warnf("Cannot create log directory, logging to stderr only: %v", err)
		return
	}

	logrus.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}))
}

func GetDefaultLogDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "itrust-keychain", "logs")
	}
	if os.Getuid() == 0 {
		return "/var/log/itrust-keychain"
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local/state/itrust-keychain/logs")
}
