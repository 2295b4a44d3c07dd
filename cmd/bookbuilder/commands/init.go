package commands

import (
	"fmt"

	"git.home.luguber.info/inful/bookbuilder/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	return RunInit(g, root.Config, i.Force)
}

func RunInit(g *Global, configPath string, force bool) error {
	fmt.Fprintf(g.out(), "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, force); err != nil {
		fmt.Fprintln(g.out(), "Initialization failed")
		return err
	}
	fmt.Fprintln(g.out(), "Initialized successfully")
	return nil
}
