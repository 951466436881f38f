package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sheetchat/internal/app"
)

type SessionsCommand struct {
	commandBase
	kind app.SourceKind
}

func NewSessionsCommand(base commandBase, kind app.SourceKind) *SessionsCommand {
	return &SessionsCommand{commandBase: base, kind: kind}
}

func (c *SessionsCommand) Run(args []string) error {
	fs := c.flagSet()
	fileID := fs.String("file", "", "only sessions for this file id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	sessions, err := chatBackendFor(client, c.kind).ListSessions(ctx, *fileID)
	if err != nil {
		return err
	}
	printSessions(c.stdout, sessions, c.kind)
	return nil
}

// StartCommand opens a spreadsheet session and prints its id.
type StartCommand struct {
	commandBase
}

func NewStartCommand(base commandBase) *StartCommand {
	return &StartCommand{commandBase: base}
}

func (c *StartCommand) Run(args []string) error {
	fs := c.flagSet()
	fileID := fs.String("file", "", "spreadsheet file id")
	sheet := fs.String("sheet", "", "sheet name (defaults to the first sheet)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*fileID) == "" {
		return errors.New("file is required")
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	sheetName := strings.TrimSpace(*sheet)
	if sheetName == "" {
		file, err := client.FileInfo(ctx, *fileID)
		if err != nil {
			return err
		}
		sheetName = file.DefaultSheet()
		if sheetName == "" {
			return fmt.Errorf("file %s has no sheets", *fileID)
		}
	}
	session, err := client.CreateSession(ctx, *fileID, sheetName)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, session.ID)
	return nil
}

type DocStartCommand struct {
	commandBase
}

func NewDocStartCommand(base commandBase) *DocStartCommand {
	return &DocStartCommand{commandBase: base}
}

func (c *DocStartCommand) Run(args []string) error {
	fs := c.flagSet()
	fileID := fs.String("file", "", "document file id")
	name := fs.String("name", "", "session name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*fileID) == "" {
		return errors.New("file is required")
	}
	if strings.TrimSpace(*name) == "" {
		return errors.New("name is required")
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	session, err := client.CreateDocumentSession(ctx, *fileID, strings.TrimSpace(*name))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, session.ID)
	return nil
}

type HistoryCommand struct {
	commandBase
	kind app.SourceKind
}

func NewHistoryCommand(base commandBase, kind app.SourceKind) *HistoryCommand {
	return &HistoryCommand{commandBase: base, kind: kind}
}

func (c *HistoryCommand) Run(args []string) error {
	fs := c.flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errSessionIDRequired
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	history, err := chatBackendFor(client, c.kind).History(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	printHistory(c.stdout, history)
	return nil
}

// AskCommand sends one question to an existing session and prints the reply.
type AskCommand struct {
	commandBase
	kind app.SourceKind
}

func NewAskCommand(base commandBase, kind app.SourceKind) *AskCommand {
	return &AskCommand{commandBase: base, kind: kind}
}

func (c *AskCommand) Run(args []string) error {
	fs := c.flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errSessionIDRequired
	}
	question := joinQuestion(fs.Args()[1:])
	if question == "" {
		return errors.New("question is required")
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	reply, err := chatBackendFor(client, c.kind).Ask(ctx, fs.Arg(0), question)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, strings.TrimRight(reply.Content, "\n"))
	return nil
}

type DeleteSessionCommand struct {
	commandBase
	kind app.SourceKind
}

func NewDeleteSessionCommand(base commandBase, kind app.SourceKind) *DeleteSessionCommand {
	return &DeleteSessionCommand{commandBase: base, kind: kind}
}

func (c *DeleteSessionCommand) Run(args []string) error {
	fs := c.flagSet()
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) < 1 {
		return errSessionIDRequired
	}
	id := positional[0]
	if !*yes && !c.confirm(fmt.Sprintf("Delete session %s?", id)) {
		return nil
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := chatBackendFor(client, c.kind).DeleteSession(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "ok")
	return nil
}
