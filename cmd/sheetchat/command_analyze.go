package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// AnalyzeCommand asks a one-off spreadsheet question without a session.
type AnalyzeCommand struct {
	commandBase
}

func NewAnalyzeCommand(base commandBase) *AnalyzeCommand {
	return &AnalyzeCommand{commandBase: base}
}

func (c *AnalyzeCommand) Run(args []string) error {
	fs := c.flagSet()
	fileID := fs.String("file", "", "spreadsheet file id")
	sheet := fs.String("sheet", "", "sheet name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*fileID) == "" {
		return errors.New("file is required")
	}
	if strings.TrimSpace(*sheet) == "" {
		return errors.New("sheet is required")
	}
	question := joinQuestion(fs.Args())
	if question == "" {
		return errors.New("question is required")
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	output, err := client.Analyze(ctx, *fileID, *sheet, question)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, strings.TrimRight(output, "\n"))
	return nil
}

type QueryCommand struct {
	commandBase
}

func NewQueryCommand(base commandBase) *QueryCommand {
	return &QueryCommand{commandBase: base}
}

func (c *QueryCommand) Run(args []string) error {
	fs := c.flagSet()
	fileID := fs.String("file", "", "document file id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*fileID) == "" {
		return errors.New("file is required")
	}
	question := joinQuestion(fs.Args())
	if question == "" {
		return errors.New("question is required")
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	answer, err := client.QueryDocument(ctx, *fileID, question)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, strings.TrimRight(answer, "\n"))
	return nil
}
