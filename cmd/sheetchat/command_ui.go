package main

import (
	"flag"
	"io"
)

type UICommand struct {
	stderr    io.Writer
	newClient clientFactory
	version   func() string
}

func NewUICommand(stderr io.Writer, newClient clientFactory, version func() string) *UICommand {
	return &UICommand{
		stderr:    stderr,
		newClient: newClient,
		version:   version,
	}
}

func (c *UICommand) Run(args []string) error {
	fs := flag.NewFlagSet("ui", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := c.newClient()
	if err != nil {
		return err
	}
	return client.RunUI(c.version())
}
