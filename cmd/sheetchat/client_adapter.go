package main

import (
	"context"
	"io"

	"sheetchat/internal/app"
	"sheetchat/internal/client"
	"sheetchat/internal/config"
	"sheetchat/internal/logging"
)

type clientFactory func() (commandClient, error)

type commandClient interface {
	app.ClientAPI
	Analyze(ctx context.Context, fileID, sheetName, question string) (string, error)
	QueryDocument(ctx context.Context, fileID, question string) (string, error)
	RunUI(version string) error
}

type apiClientAdapter struct {
	*client.Client
	cfg config.Config
}

func newAPIClientFactory(stderr io.Writer) clientFactory {
	return func() (commandClient, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		logger := logging.New(stderr, logging.ParseLevel(cfg.LogLevel()))
		return &apiClientAdapter{Client: client.New(cfg, logger), cfg: cfg}, nil
	}
}

// RunUI rebuilds the client on a file logger since the UI owns the terminal.
func (c *apiClientAdapter) RunUI(version string) error {
	path, err := c.cfg.ResolveLogPath()
	if err != nil {
		return err
	}
	logger, err := logging.NewFile(path, logging.ParseLevel(c.cfg.LogLevel()))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("ui starting", logging.F("version", version), logging.F("api", c.cfg.APIBaseURL()))
	return app.Run(c.cfg, client.New(c.cfg, logger), logger)
}

func chatBackendFor(api commandClient, kind app.SourceKind) app.ChatBackend {
	if kind == app.SourceDocument {
		return app.NewDocumentBackend(api)
	}
	return app.NewSheetBackend(api)
}

func fileBackendFor(api commandClient, kind app.SourceKind) app.FileBackend {
	if kind == app.SourceDocument {
		return app.NewDocumentBackend(api)
	}
	return app.NewSheetBackend(api)
}
