package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, role string) error
	Logout(ctx context.Context) error
	Open(ctx context.Context, path string) error
	WhoAmI(ctx context.Context) error
	Theme(ctx context.Context, arg string) error
	Pages(ctx context.Context) error
	Store(ctx context.Context) error
	Reset(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the dashboard shell.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("dash %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]
		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: open <path>, pages, whoami, theme [toggle|light|dark], store, reset, logout, exit")
			} else {
				printlnFn("Available commands: login [admin|user], open <path>, theme [toggle|light|dark], store, reset, exit")
			}

		case "login":
			_ = a.Login(ctx, arg)

		case "logout":
			_ = a.Logout(ctx)

		case "open", "goto", "cd":
			if arg == "" {
				printlnFn("Usage: open <path>")
				continue
			}
			if !strings.HasPrefix(arg, "/") {
				arg = "/" + arg
			}
			_ = a.Open(ctx, arg)

		case "pages", "ls":
			_ = a.Pages(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "theme":
			_ = a.Theme(ctx, arg)

		case "store":
			_ = a.Store(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
