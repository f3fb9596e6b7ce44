package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alapierre/itrust-keychain/pkg/secrets"
)

type GetCmd struct {
	Key string `arg:"" help:"Key to read."`
}

func (c *GetCmd) Run(g *Globals) error {
	return handleGet(context.Background(), g, c.Key)
}

func handleGet(ctx context.Context, g *Globals, key string) error {
	kc, done, err := g.openKeychain(ctx)
	if err != nil {
		return err
	}
	defer done()

	logger.Debugf("Retrieving %s from %s", key, kc.Namespace())
	value, err := kc.Retrieve(ctx, key)
	if err != nil {
		if errors.Is(err, secrets.ErrItemNotFound) {
			logger.Debugf("Key %s is not set in %s", key, kc.Namespace())
		}
		return err
	}

	fmt.Println(value)
	return nil
}
