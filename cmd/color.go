package cmd

import (
	"github.com/grovetools/rallylog/pkg/config"
	"github.com/spf13/pflag"
)

// colorFlag validates --color at parse time.
type colorFlag string

var _ pflag.Value = (*colorFlag)(nil)

func (c *colorFlag) String() string { return string(*c) }

func (c *colorFlag) Set(s string) error {
	mode, err := config.ParseColorMode(s)
	if err != nil {
		return err
	}
	*c = colorFlag(mode)
	return nil
}

func (c *colorFlag) Type() string { return "mode" }
