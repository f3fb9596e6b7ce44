package cli

import (
	"context"
	"fmt"
)

type SaveCmd struct {
	Key   string `arg:"" help:"Key to store the value under."`
	Value string `arg:"" optional:"" help:"Value to store (prompted if missing)."`
	Stdin bool   `help:"Read the value from standard input."`
}

func (c *SaveCmd) Run(g *Globals) error {
	return handleSave(context.Background(), g, c.Key, c.Value, c.Stdin, false)
}

type UpdateCmd struct {
	Key   string `arg:"" help:"Existing key to overwrite."`
	Value string `arg:"" optional:"" help:"New value (prompted if missing)."`
	Stdin bool   `help:"Read the value from standard input."`
}

func (c *UpdateCmd) Run(g *Globals) error {
	return handleSave(context.Background(), g, c.Key, c.Value, c.Stdin, true)
}

func handleSave(ctx context.Context, g *Globals, key, value string, fromStdin, updateOnly bool) error {
	buf, err := g.readValue(value, fromStdin, key)
	if err != nil {
		return fmt.Errorf("failed to read value: %w", err)
	}
	defer buf.Destroy()

	kc, done, err := g.openKeychain(ctx)
	if err != nil {
		return err
	}
	defer done()

	if updateOnly {
		logger.Debugf("Updating %s in %s", key, kc.Namespace())
		err = kc.Update(ctx, buf.String(), key)
	} else {
		logger.Debugf("Saving %s in %s", key, kc.Namespace())
		err = kc.Save(ctx, buf.String(), key)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Key %s stored in %s.\n", key, kc.Namespace())
	return nil
}
