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
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	UpdateProfile(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the finctl shell.
//
// It reads a line from the scanner, parses the first token as the command,
// and dispatches to methods on a. Unknown commands are reported back to the
// user. The loop exits on scanner EOF or when the user types "exit"/"quit".
// Command errors are printed, never fatal.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	_, _ = printlnFn("finctl (type 'help' for commands)")

	for {
		fmt.Printf("finctl %s> ", statusFn())
		if !scanner.Scan() {
			return
		}

		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				_, _ = printlnFn("Available commands: whoami, update, passwd, refresh, logout, exit")
			} else {
				_, _ = printlnFn("Available commands: register, login, exit")
			}
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "whoami":
			err = a.Whoami(ctx)
		case "update":
			err = a.UpdateProfile(ctx)
		case "passwd":
			err = a.ChangePassword(ctx)
		case "refresh":
			err = a.Refresh(ctx)
		case "exit", "quit":
			_, _ = printlnFn("Bye!")
			return
		default:
			_, _ = printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			_, _ = printlnFn("Error:", err.Error())
		}
	}
}
