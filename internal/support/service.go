package support

import (
	"context"
	"fmt"

	"github.com/alapierre/itrust-keychain/pkg/config"
	"github.com/alapierre/itrust-keychain/pkg/keychain"
	"github.com/alapierre/itrust-keychain/pkg/profile"
	"github.com/alapierre/itrust-keychain/pkg/secrets"
	"github.com/prometheus/client_golang/prometheus"
)

func BuildService(ctx context.Context, cfg config.Config) (secrets.Service, error) {
	backendType := cfg.Get(config.KeyBackend, profile.DefaultBackend)
	logger.Debugf("Using %s backend", backendType)

	switch backendType {
	case "keyring":
		return &secrets.KeyringSecretStore{}, nil
	case "http":
		baseURL := cfg.Get(config.KeyHTTPURL, "")
		if baseURL == "" {
			return nil, fmt.Errorf("%s is required for the http backend", config.KeyHTTPURL)
		}
		return secrets.NewHTTPSecretStore(baseURL, cfg.Get(config.KeyHTTPUsername, ""), cfg.Get(config.KeyHTTPPassword, "")), nil
	case "aws":
		return secrets.NewAWSSecretsManagerStore(ctx, secrets.AWSOptions{
			Region:   cfg.Get(config.KeyAWSRegion, secrets.DefaultAWSRegion),
			Endpoint: cfg.Get(config.KeyAWSEndpoint, ""),
		})
	}
	return nil, fmt.Errorf("unsupported backend: %s", backendType)
}

// OpenKeychain builds the configured service and binds it to the resolved
// namespace. Service calls are instrumented when reg is not nil.
func OpenKeychain(ctx context.Context, cfg config.Config, reg prometheus.Registerer) (*keychain.Keychain, error) {
	svc, err := BuildService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if reg != nil {
		svc = secrets.Instrument(svc, reg)
	}

	namespace := keychain.ResolveNamespace(cfg.Get(config.KeyNamespace, ""))
	logger.Debugf("Using namespace %s", namespace)
	return keychain.New(namespace, svc), nil
}
