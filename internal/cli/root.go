package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alapierre/itrust-keychain/pkg/logging"
	"github.com/alecthomas/kong"
	"github.com/awnumar/memguard"
)

var logger = logging.Component("internal/cli")

type Globals struct {
	Verbose         bool   `help:"Enable verbose logging." short:"v"`
	NonInteractive  bool   `help:"Disable interactive prompts."`
	Profile         string `help:"Profile to load from the configuration directory." short:"p"`
	Namespace       string `help:"Namespace (service name) the keys are stored under." short:"n"`
	Backend         string `help:"Secret storage backend: keyring, http or aws."`
	ConfigDir       string `help:"Override configuration directory."`
	LogToFile       bool   `help:"Enable logging to file." env:"KEYCHAIN_LOG_TO_FILE"`
	LogFilePath     string `help:"Override default log file path." env:"KEYCHAIN_LOG_FILE"`
	MetricsTextfile string `help:"Write service metrics to this file in Prometheus text format." env:"KEYCHAIN_METRICS_TEXTFILE"`
}

type CLI struct {
	Globals `embed:""`

	Save     SaveCmd    `cmd:"" help:"Store a value, creating or overwriting the key."`
	Update   UpdateCmd  `cmd:"" help:"Overwrite the value of an existing key."`
	Get      GetCmd     `cmd:"" help:"Print the value stored under a key."`
	Delete   DeleteCmd  `cmd:"" help:"Remove a key."`
	Profiles ProfileCmd `cmd:"" name:"profile" help:"Profile management."`
	Version  VersionCmd `cmd:"" help:"Show application version."`
}

func Main() {
	memguard.CatchInterrupt()
	defer memguard.Purge()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("itrust-keychain"),
		kong.Description("Store secrets in the OS keychain or a remote secret service"),
		kong.UsageOnError(),
	)

	logPath := cli.Globals.LogFilePath
	if cli.Globals.LogToFile && logPath == "" {
		logPath = filepath.Join(logging.GetDefaultLogDir(), "itrust-keychain.log")
	}

	logging.SetupLogging(cli.Globals.Verbose, logPath)

	err := kctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		memguard.SafeExit(1)
	}
}
