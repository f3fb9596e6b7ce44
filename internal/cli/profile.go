package cli

import (
	"fmt"

	"github.com/alapierre/itrust-keychain/internal/support"
	"github.com/alapierre/itrust-keychain/pkg/profile"
)

type ProfileCmd struct {
	Init ProfileInitCmd `cmd:"" help:"Create or replace a profile."`
	Show ProfileShowCmd `cmd:"" help:"Show a profile."`
}

type ProfileInitCmd struct {
	Name        string `arg:"" help:"Profile name. Namespace and backend come from --namespace and --backend."`
	HTTPURL     string `name:"http-url" help:"Base URL of the remote secret service (http backend)."`
	AWSRegion   string `name:"aws-region" help:"AWS region (aws backend)."`
	AWSEndpoint string `name:"aws-endpoint" help:"Custom Secrets Manager endpoint (aws backend)."`
}

func (c *ProfileInitCmd) Run(g *Globals) error {
	p := &profile.Profile{
		Name:        c.Name,
		Namespace:   g.Namespace,
		Backend:     g.Backend,
		HTTPURL:     c.HTTPURL,
		AWSRegion:   c.AWSRegion,
		AWSEndpoint: c.AWSEndpoint,
	}
	return handleProfileInit(support.GetConfigDir(g.ConfigDir), p)
}

type ProfileShowCmd struct {
	Name string `arg:"" help:"Profile name."`
}

func (c *ProfileShowCmd) Run(g *Globals) error {
	return handleProfileShow(support.GetConfigDir(g.ConfigDir), c.Name)
}

func handleProfileInit(configDir string, p *profile.Profile) error {
	switch p.Backend {
	case "":
		p.Backend = profile.DefaultBackend
	case "keyring", "http", "aws":
	default:
		return fmt.Errorf("unsupported backend: %s", p.Backend)
	}
	if p.Backend == "http" && p.HTTPURL == "" {
		return fmt.Errorf("--http-url is required for the http backend")
	}

	logger.Infof("Initializing profile %s", p.Name)
	if err := profile.SaveProfile(configDir, p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	fmt.Printf("Profile %s initialized at %s\n", p.Name, profile.GetProfilePath(configDir, p.Name))
	return nil
}

func handleProfileShow(configDir, name string) error {
	p, err := profile.LoadProfile(configDir, name)
	if err != nil {
		return fmt.Errorf("failed to load profile %s: %w", name, err)
	}

	fmt.Printf("Profile %s:\n", name)
	fmt.Println("-------------------------------------------")
	fmt.Print(profile.ToEnvSnippet(p))
	fmt.Println("-------------------------------------------")
	return nil
}
