package main

import (
	"io"
	"os"

	"sheetchat/internal/app"
)

type commandRunner interface {
	Run(args []string) error
}

type commandWiring struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
	version   func() string
}

func defaultCommandWiring(stdin io.Reader, stdout, stderr io.Writer) commandWiring {
	if stdin == nil {
		stdin = os.Stdin
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdin:     stdin,
		stdout:    stdout,
		stderr:    stderr,
		newClient: newAPIClientFactory(stderr),
		version:   buildVersion,
	}
}

func buildCommands(wiring commandWiring) map[string]commandRunner {
	base := func(name string) commandBase {
		return commandBase{
			name:      name,
			stdin:     wiring.stdin,
			stdout:    wiring.stdout,
			stderr:    wiring.stderr,
			newClient: wiring.newClient,
		}
	}
	return map[string]commandRunner{
		"files":          NewFilesCommand(base("files"), app.SourceSheet),
		"info":           NewInfoCommand(base("info")),
		"upload":         NewUploadCommand(base("upload"), app.SourceSheet),
		"delete-file":    NewDeleteFileCommand(base("delete-file"), app.SourceSheet),
		"sessions":       NewSessionsCommand(base("sessions"), app.SourceSheet),
		"start":          NewStartCommand(base("start")),
		"history":        NewHistoryCommand(base("history"), app.SourceSheet),
		"ask":            NewAskCommand(base("ask"), app.SourceSheet),
		"delete-session": NewDeleteSessionCommand(base("delete-session"), app.SourceSheet),
		"analyze":        NewAnalyzeCommand(base("analyze")),

		"docs":               NewFilesCommand(base("docs"), app.SourceDocument),
		"doc-upload":         NewUploadCommand(base("doc-upload"), app.SourceDocument),
		"doc-delete":         NewDeleteFileCommand(base("doc-delete"), app.SourceDocument),
		"doc-sessions":       NewSessionsCommand(base("doc-sessions"), app.SourceDocument),
		"doc-start":          NewDocStartCommand(base("doc-start")),
		"doc-history":        NewHistoryCommand(base("doc-history"), app.SourceDocument),
		"doc-ask":            NewAskCommand(base("doc-ask"), app.SourceDocument),
		"doc-query":          NewQueryCommand(base("doc-query")),
		"doc-delete-session": NewDeleteSessionCommand(base("doc-delete-session"), app.SourceDocument),

		"config": NewConfigCommand(wiring.stdout, wiring.stderr),
		"ui":     NewUICommand(wiring.stderr, wiring.newClient, wiring.version),
	}
}
