package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alapierre/itrust-keychain/internal/support"
	"github.com/alapierre/itrust-keychain/pkg/config"
	"github.com/alapierre/itrust-keychain/pkg/keychain"
	"github.com/awnumar/memguard"
	"github.com/prometheus/client_golang/prometheus"
)

// openKeychain resolves configuration and returns a keychain plus a function
// that must be called once the command is done.
func (g *Globals) openKeychain(ctx context.Context) (*keychain.Keychain, func(), error) {
	overrides := make(config.Config)
	overrides.Set(config.KeyProfile, g.Profile)
	overrides.Set(config.KeyNamespace, g.Namespace)
	overrides.Set(config.KeyBackend, g.Backend)

	cfg, err := support.LoadMergedConfig(support.GetConfigDir(g.ConfigDir), overrides)
	if err != nil {
		return nil, nil, err
	}

	if cfg.Get(config.KeyBackend, "") == "http" {
		user := cfg.Get(config.KeyHTTPUsername, "")
		if user != "" && cfg.Get(config.KeyHTTPPassword, "") == "" && !g.NonInteractive {
			pass, err := support.ReadPassword(fmt.Sprintf("Enter password for %s: ", user))
			if err != nil {
				return nil, nil, fmt.Errorf("failed to read password: %w", err)
			}
			cfg.Set(config.KeyHTTPPassword, pass)
		}
	}

	var registry *prometheus.Registry
	var reg prometheus.Registerer
	if g.MetricsTextfile != "" {
		registry = prometheus.NewRegistry()
		reg = registry
	}

	kc, err := support.OpenKeychain(ctx, cfg, reg)
	if err != nil {
		return nil, nil, err
	}

	done := func() {
		if registry == nil {
			return
		}
		if err := prometheus.WriteToTextfile(g.MetricsTextfile, registry); err != nil {
			logger.Warnf("Failed to write metrics to %s: %v", g.MetricsTextfile, err)
		}
	}
	return kc, done, nil
}

// readValue returns the value to store in locked memory: the argument when
// given, else stdin, else an interactive prompt.
func (g *Globals) readValue(value string, fromStdin bool, key string) (*memguard.LockedBuffer, error) {
	if value != "" {
		logger.Debug("Value passed as an argument; it may be visible in the process list")
		return memguard.NewBufferFromBytes([]byte(value)), nil
	}
	if fromStdin {
		return support.ReadSecret(os.Stdin)
	}
	if g.NonInteractive {
		return nil, fmt.Errorf("value for %s is required in non-interactive mode (pass it as an argument or use --stdin)", key)
	}
	return support.PromptSecret(fmt.Sprintf("Enter value for %s: ", key))
}
