package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to.
type execIface interface {
	Add(ctx context.Context) error
	Recognize(ctx context.Context) error
	Edit(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Search(ctx context.Context, query string) error
	Show(ctx context.Context) error
	Archive(ctx context.Context) error
	Delete(ctx context.Context) error
	Pair(ctx context.Context) error
	Settings(ctx context.Context) error
}

const helpText = "Available commands: add, recognize, edit, (l)ist [all] [color=Red] [style=Still] [sweet=Dry,Sweet], search <text>, show, archive, delete, pair, settings, exit"

// runREPL reads commands from reader until EOF, "exit" or "quit". Handler
// errors are printed and the loop continues. Prompts inside handlers read
// from the same reader.
func runREPL(ctx context.Context, a execIface, reader *bufio.Reader) {
	for {
		printlnFn("cellar> ")
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "add":
			cmdErr = a.Add(ctx)

		case "recognize":
			cmdErr = a.Recognize(ctx)

		case "edit":
			cmdErr = a.Edit(ctx)

		case "l", "list":
			cmdErr = a.List(ctx, args)

		case "search":
			if len(args) == 0 {
				printlnFn("Usage: search <text>")
				continue
			}
			cmdErr = a.Search(ctx, strings.Join(args, " "))

		case "show":
			cmdErr = a.Show(ctx)

		case "archive":
			cmdErr = a.Archive(ctx)

		case "delete":
			cmdErr = a.Delete(ctx)

		case "pair":
			cmdErr = a.Pair(ctx)

		case "settings":
			cmdErr = a.Settings(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("error:", cmdErr)
		}
	}
}
