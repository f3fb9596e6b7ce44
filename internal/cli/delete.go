package cli

import (
	"context"
	"fmt"
)

type DeleteCmd struct {
	Key string `arg:"" help:"Key to remove."`
}

func (c *DeleteCmd) Run(g *Globals) error {
	return handleDelete(context.Background(), g, c.Key)
}

func handleDelete(ctx context.Context, g *Globals, key string) error {
	kc, done, err := g.openKeychain(ctx)
	if err != nil {
		return err
	}
	defer done()

	logger.Debugf("Deleting %s from %s", key, kc.Namespace())
	if err := kc.Delete(ctx, key); err != nil {
		return err
	}

	fmt.Printf("Key %s deleted from %s.\n", key, kc.Namespace())
	return nil
}
