package main

import (
	"fmt"
	"os"
)

const usageText = `sheetchat talks to the spreadsheet analysis and document chat backend.

Usage:
  sheetchat <command> [flags]

Spreadsheet commands:
  files                               list uploaded spreadsheets
  info <fileId>                       show file details and sheet names
  upload <path>                       upload an .xlsx or .xls file
  delete-file <fileId> [--yes]        delete a spreadsheet
  sessions [--file ID]                list chat sessions
  start --file ID [--sheet NAME]      start a chat session (first sheet by default)
  history <sessionId>                 print a session transcript
  ask <sessionId> <question...>       send a question to a session
  delete-session <id> [--yes]         delete a chat session
  analyze --file ID --sheet NAME <question...>
                                      one-off question without a session

Document commands:
  docs                                list uploaded documents
  doc-upload <path>                   upload a .txt, .docx or .pdf file
  doc-sessions [--file ID]            list document sessions
  doc-start --file ID --name NAME     start a document session
  doc-history <sessionId>             print a document session transcript
  doc-ask <sessionId> <question...>   send a question to a document session
  doc-query --file ID <question...>   one-off question without a session
  doc-delete-session <id> [--yes]     delete a document session
  doc-delete <fileId> [--yes]         delete a document

Other commands:
  config   print configuration (effective or defaults)
  ui       run terminal UI
  help     show help

Environment:
  SHEETCHAT_API_BASE    backend base URL (VITE_API_BASE is also read)
  SHEETCHAT_LOG_LEVEL   debug, info, warn or error

Examples:
  sheetchat upload ./sales.xlsx
  sheetchat start --file 3f2a --sheet Q1
  sheetchat ask 9c1e "which region grew fastest?"
  sheetchat config --defaults
`

func printUsage() {
	fmt.Fprint(os.Stderr, usageText)
}

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		return
	}

	wiring := defaultCommandWiring(os.Stdin, os.Stdout, os.Stderr)
	commands := buildCommands(wiring)

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return
	}

	runner, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", args[0])
		printUsage()
		os.Exit(2)
	}
	exitOnErr(args[0], runner.Run(args[1:]), wiring.stderr)
}
