package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alapierre/itrust-keychain/pkg/config"
	"github.com/alapierre/itrust-keychain/pkg/logging"
)

var logger = logging.Component("pkg/profile")

const DefaultBackend = "keyring"

// Profile holds non-secret settings for one namespace. Credentials stay in
// the environment or keyring and are never written here.
type Profile struct {
	Name        string
	Namespace   string
	Backend     string
	HTTPURL     string
	AWSRegion   string
	AWSEndpoint string
}

func LoadProfile(configDir, name string) (*Profile, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	path := GetProfilePath(configDir, name)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(name, cfg), nil
}

func FromConfig(name string, cfg config.Config) *Profile {
	return &Profile{
		Name:        cfg.Get(config.KeyProfile, name),
		Namespace:   cfg.Get(config.KeyNamespace, ""),
		Backend:     cfg.Get(config.KeyBackend, DefaultBackend),
		HTTPURL:     cfg.Get(config.KeyHTTPURL, ""),
		AWSRegion:   cfg.Get(config.KeyAWSRegion, ""),
		AWSEndpoint: cfg.Get(config.KeyAWSEndpoint, ""),
	}
}

// Config returns the profile as configuration entries, omitting empty values.
func (p *Profile) Config() config.Config {
	cfg := make(config.Config)
	cfg.Set(config.KeyProfile, p.Name)
	cfg.Set(config.KeyNamespace, p.Namespace)
	cfg.Set(config.KeyBackend, p.Backend)
	cfg.Set(config.KeyHTTPURL, p.HTTPURL)
	cfg.Set(config.KeyAWSRegion, p.AWSRegion)
	cfg.Set(config.KeyAWSEndpoint, p.AWSEndpoint)
	return cfg
}

func SaveProfile(configDir string, p *Profile) error {
	if err := checkName(p.Name); err != nil {
		return err
	}
	path := GetProfilePath(configDir, p.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	logger.Debugf("Writing profile %s to %s", p.Name, path)
	return os.WriteFile(path, []byte(ToEnvSnippet(p)), 0600)
}

// checkName keeps profile names inside the profiles directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid profile name %q", name)
	}
	return nil
}

func GetProfilePath(configDir, name string) string {
	return filepath.Join(configDir, "profiles", name+".env")
}

func ToEnvSnippet(p *Profile) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s=%s\n", config.KeyProfile, p.Name))
	if p.Namespace != "" {
		sb.WriteString(fmt.Sprintf("%s=%s\n", config.KeyNamespace, p.Namespace))
	}
	sb.WriteString(fmt.Sprintf("%s=%s\n", config.KeyBackend, p.Backend))
	if p.HTTPURL != "" {
		sb.WriteString(fmt.Sprintf("%s=%s\n", config.KeyHTTPURL, p.HTTPURL))
	}
	if p.AWSRegion != "" {
		sb.WriteString(fmt.Sprintf("%s=%s\n", config.KeyAWSRegion, p.AWSRegion))
	}
	if p.AWSEndpoint != "" {
		sb.WriteString(fmt.Sprintf("%s=%s\n", config.KeyAWSEndpoint, p.AWSEndpoint))
	}
	return sb.String()
}
