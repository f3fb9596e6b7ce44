package config

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/alapierre/itrust-keychain/pkg/logging"
)

var logger = logging.Component("pkg/config")

// EnvPrefix marks environment variables that take part in configuration.
const EnvPrefix = "KEYCHAIN_"

const (
	KeyProfile      = "KEYCHAIN_PROFILE"
	KeyNamespace    = "KEYCHAIN_NAMESPACE"
	KeyBackend      = "KEYCHAIN_BACKEND"
	KeyHTTPURL      = "KEYCHAIN_HTTP_URL"
	KeyHTTPUsername = "KEYCHAIN_HTTP_USERNAME"
	KeyHTTPPassword = "KEYCHAIN_HTTP_PASSWORD"
	KeyAWSRegion    = "KEYCHAIN_AWS_REGION"
	KeyAWSEndpoint  = "KEYCHAIN_AWS_ENDPOINT"
)

type Config map[string]string

func Parse(r io.Reader) (Config, error) {
	config := make(Config)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		config[key] = value
	}
	return config, scanner.Err()
}

// LoadFile reads an env file. A missing file yields an empty Config.
func LoadFile(path string) (Config, error) {
	logger.Debugf("Loading config from %s", path)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(Config), nil
		}
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

func (c Config) Merge(other Config) {
	for k, v := range other {
		c[k] = v
	}
}

func (c Config) Get(key string, defaultValue string) string {
	if v, ok := c[key]; ok && v != "" {
		return v
	}
	return defaultValue
}

// Set stores value unless it is empty, so unset flags never shadow lower sources.
func (c Config) Set(key, value string) {
	if value != "" {
		c[key] = value
	}
}

// MergeConfigs merges configs; earlier arguments take priority.
func MergeConfigs(priority ...Config) Config {
	res := make(Config)
	for i := len(priority) - 1; i >= 0; i-- {
		res.Merge(priority[i])
	}
	return res
}

func GetEnvConfig() Config {
	res := make(Config)
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, EnvPrefix) {
			parts := strings.SplitN(env, "=", 2)
			res[parts[0]] = parts[1]
		}
	}
	return res
}
