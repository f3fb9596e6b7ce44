package support

import (
	"fmt"
	"path/filepath"

	"github.com/alapierre/itrust-keychain/pkg/config"
	"github.com/alapierre/itrust-keychain/pkg/logging"
	"github.com/alapierre/itrust-keychain/pkg/profile"
)

var logger = logging.Component("support")

// LoadMergedConfig merges, highest priority first: overrides (command-line
// flags), KEYCHAIN_* environment, the selected profile, and config.env.
func LoadMergedConfig(configDir string, overrides config.Config) (config.Config, error) {
	envCfg := config.GetEnvConfig()
	globalPath := filepath.Join(configDir, "config.env")
	globalCfg, err := config.LoadFile(globalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", globalPath, err)
	}

	base := config.MergeConfigs(overrides, envCfg, globalCfg)
	name := base.Get(config.KeyProfile, "")
	if name == "" {
		return base, nil
	}

	logger.Debugf("Loading profile %s", name)
	p, err := profile.LoadProfile(configDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile %s: %w", name, err)
	}

	return config.MergeConfigs(overrides, envCfg, p.Config(), globalCfg), nil
}
