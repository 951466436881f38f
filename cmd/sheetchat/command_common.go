package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-runewidth"

	"sheetchat/internal/app"
	"sheetchat/internal/types"
)

const (
	version        = "dev"
	maxColumnWidth = 40
)

var errSessionIDRequired = errors.New("session id is required")

// commandBase carries the streams and client factory every API command uses.
type commandBase struct {
	name      string
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	newClient clientFactory
}

func (b commandBase) flagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(b.name, flag.ContinueOnError)
	fs.SetOutput(b.stderr)
	return fs
}

// parseInterspersed lets flags follow positional arguments, so
// "delete-file abc --yes" behaves like "delete-file --yes abc".
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// confirm asks a yes/no question on stdin. Anything but y or yes declines.
func (b commandBase) confirm(prompt string) bool {
	fmt.Fprintf(b.stderr, "%s [y/N]: ", prompt)
	if b.stdin == nil {
		return false
	}
	line, err := bufio.NewReader(b.stdin).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func printFiles(output io.Writer, files []types.UploadedFile, kind app.SourceKind) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	if kind == app.SourceDocument {
		fmt.Fprintln(writer, "ID\tFILENAME\tTYPE\tUPLOADED")
	} else {
		fmt.Fprintln(writer, "ID\tFILENAME\tSIZE\tSHEETS\tUPLOADED")
	}
	for _, file := range files {
		name := column(file.Filename)
		uploaded := app.FormatFileTime(file.UploadedAt)
		if kind == app.SourceDocument {
			fileType := file.FileType
			if fileType == "" {
				fileType = "-"
			}
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n", file.FileID, name, fileType, uploaded)
			continue
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%s\n", file.FileID, name, app.FormatFileSize(file.Size), len(file.SheetNames), uploaded)
	}
	_ = writer.Flush()
}

func printFileInfo(output io.Writer, file *types.UploadedFile) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	fmt.Fprintf(writer, "ID:\t%s\n", file.FileID)
	fmt.Fprintf(writer, "Filename:\t%s\n", file.Filename)
	fmt.Fprintf(writer, "Size:\t%s\n", app.FormatFileSize(file.Size))
	fmt.Fprintf(writer, "Uploaded:\t%s\n", app.FormatFileTime(file.UploadedAt))
	_ = writer.Flush()
	if len(file.SheetNames) == 0 {
		return
	}
	fmt.Fprintln(output, "Sheets:")
	for _, sheet := range file.SheetNames {
		fmt.Fprintf(output, "  %s\n", sheet)
	}
}

func printSessions(output io.Writer, sessions []types.Session, kind app.SourceKind) {
	writer := tabwriter.NewWriter(output, 0, 8, 2, ' ', 0)
	if kind == app.SourceDocument {
		fmt.Fprintln(writer, "ID\tFILE\tNAME\tFILENAME\tCREATED")
	} else {
		fmt.Fprintln(writer, "ID\tFILE\tSHEET\tMESSAGES\tCREATED")
	}
	for _, session := range sessions {
		created := app.FormatTimestamp(session.CreatedAt)
		if kind == app.SourceDocument {
			fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n", session.ID, session.FileID, column(session.SessionName), column(session.Filename), created)
			continue
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%s\n", session.ID, session.FileID, column(session.SheetName), session.MessagesCount, created)
	}
	_ = writer.Flush()
}

func printHistory(output io.Writer, history *types.History) {
	if source := history.Source(); source != "" {
		fmt.Fprintf(output, "# %s (%s)\n\n", source, history.SessionID)
	}
	if len(history.Messages) == 0 {
		fmt.Fprintln(output, "(no messages)")
		return
	}
	for i, message := range history.Messages {
		if i > 0 {
			fmt.Fprintln(output)
		}
		printMessage(output, message)
	}
}

func printMessage(output io.Writer, message types.Message) {
	header := string(message.Role)
	if ts := app.FormatTimestamp(message.Timestamp); ts != "" {
		header += " · " + ts
	}
	fmt.Fprintf(output, "[%s]\n%s\n", header, strings.TrimRight(message.Content, "\n"))
}

func column(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return runewidth.Truncate(value, maxColumnWidth, "…")
}

func joinQuestion(parts []string) string {
	return strings.TrimSpace(strings.Join(parts, " "))
}

func exitOnErr(label string, err error, stderr io.Writer) {
	if err == nil {
		return
	}
	fmt.Fprintf(stderr, "%s error: %v\n", label, err)
	os.Exit(1)
}

// buildVersion reports the module version or VCS revision stamped into the
// binary, falling back to the version constant.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	var revision, modified string
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision == "" {
		return version
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	if modified == "true" {
		return revision + "-dirty"
	}
	return revision
}
