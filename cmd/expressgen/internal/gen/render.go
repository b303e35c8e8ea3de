package gen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/broady/expressgen"
)

type RenderCmd struct {
	OptionFlags `embed:""`

	Template string `arg:"" help:"Template ID."`
	Verify   bool   `help:"Re-parse the output and fail on syntax or outline mismatches."`
}

func (c *RenderCmd) Run(logger *slog.Logger) error {
	opts, _, err := c.Load(logger)
	if err != nil {
		return err
	}
	p := expressgen.New(opts)
	if c.Verify {
		p = p.WithVerification()
	}
	src, err := p.Render(context.Background(), c.Template)
	if err != nil {
		return err
	}
	fmt.Print(src)
	return nil
}
