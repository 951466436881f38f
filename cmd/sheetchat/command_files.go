package main

import (
	"context"
	"errors"
	"fmt"

	"sheetchat/internal/app"
)

// FilesCommand lists spreadsheets or documents.
type FilesCommand struct {
	commandBase
	kind app.SourceKind
}

func NewFilesCommand(base commandBase, kind app.SourceKind) *FilesCommand {
	return &FilesCommand{commandBase: base, kind: kind}
}

func (c *FilesCommand) Run(args []string) error {
	fs := c.flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	files, err := fileBackendFor(client, c.kind).ListFiles(ctx)
	if err != nil {
		return err
	}
	printFiles(c.stdout, files, c.kind)
	return nil
}

type InfoCommand struct {
	commandBase
}

func NewInfoCommand(base commandBase) *InfoCommand {
	return &InfoCommand{commandBase: base}
}

func (c *InfoCommand) Run(args []string) error {
	fs := c.flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errors.New("info requires a file id")
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	file, err := client.FileInfo(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	printFileInfo(c.stdout, file)
	return nil
}

// UploadCommand uploads a local file and prints the new file id.
type UploadCommand struct {
	commandBase
	kind app.SourceKind
}

func NewUploadCommand(base commandBase, kind app.SourceKind) *UploadCommand {
	return &UploadCommand{commandBase: base, kind: kind}
}

func (c *UploadCommand) Run(args []string) error {
	fs := c.flagSet()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%s requires a file path", c.name)
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	file, err := fileBackendFor(client, c.kind).Upload(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, file.FileID)
	return nil
}

type DeleteFileCommand struct {
	commandBase
	kind app.SourceKind
}

func NewDeleteFileCommand(base commandBase, kind app.SourceKind) *DeleteFileCommand {
	return &DeleteFileCommand{commandBase: base, kind: kind}
}

func (c *DeleteFileCommand) Run(args []string) error {
	fs := c.flagSet()
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) < 1 {
		return fmt.Errorf("%s requires a file id", c.name)
	}
	id := positional[0]
	if !*yes && !c.confirm(fmt.Sprintf("Delete file %s and its sessions?", id)) {
		return nil
	}

	ctx := context.Background()
	client, err := c.newClient()
	if err != nil {
		return err
	}
	if err := fileBackendFor(client, c.kind).DeleteFile(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "ok")
	return nil
}
