package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Articles(ctx context.Context, query []string) error
	Article(ctx context.Context, id string) error
	Threads(ctx context.Context) error
	Thread(ctx context.Context, id string) error
	NewThread(ctx context.Context) error
	RmThread(ctx context.Context, id string) error
	Comment(ctx context.Context, kind, id string) error
	Uncomment(ctx context.Context, kind, id, commentID string) error
	Categories(ctx context.Context) error
	Users(ctx context.Context) error
	Role(ctx context.Context, id, role string) error
	Stats(ctx context.Context) error
	BulkDelete(ctx context.Context, kind string, ids []string) error
}

const (
	helpGuest = "Available commands: register, login, articles [query], article <id>, threads, thread <id>, categories, exit"
	helpUser  = "Available commands: articles [query], article <id>, threads, thread <id>, newthread, rmthread <id>, " +
		"comment <article|thread> <id>, uncomment <article|thread> <id> <comment-id>, categories, whoami, logout, exit"
	helpAdmin = "Admin commands: users, role <user-id> <user|admin>, stats, bulkdelete <articles|threads|comments|users|categories> <id>..."
)

// usage holds the argument synopsis of commands that need arguments.
var usage = map[string]struct {
	args int
	text string
}{
	"article":    {1, "Usage: article <id>"},
	"thread":     {1, "Usage: thread <id>"},
	"rmthread":   {1, "Usage: rmthread <id>"},
	"comment":    {2, "Usage: comment <article|thread> <id>"},
	"uncomment":  {3, "Usage: uncomment <article|thread> <id> <comment-id>"},
	"role":       {2, "Usage: role <user-id> <user|admin>"},
	"bulkdelete": {2, "Usage: bulkdelete <kind> <id>..."},
}

// runREPL starts a simple read–eval–print loop for the courtside CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands given too few arguments print
// their usage. The loop exits on EOF or when the user types "exit" or
// "quit". Prompts issued by the commands read from the same reader.
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and focused
// on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("court> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if u, ok := usage[cmd]; ok && len(args) < u.args {
			printlnFn(u.text)
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpUser)
				if a.isAdmin() {
					printlnFn(helpAdmin)
				}
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "a", "articles":
			_ = a.Articles(ctx, args)

		case "article":
			_ = a.Article(ctx, args[0])

		case "t", "threads":
			_ = a.Threads(ctx)

		case "thread":
			_ = a.Thread(ctx, args[0])

		case "newthread":
			_ = a.NewThread(ctx)

		case "rmthread":
			_ = a.RmThread(ctx, args[0])

		case "comment":
			_ = a.Comment(ctx, args[0], args[1])

		case "uncomment":
			_ = a.Uncomment(ctx, args[0], args[1], args[2])

		case "categories":
			_ = a.Categories(ctx)

		case "users":
			_ = a.Users(ctx)

		case "role":
			_ = a.Role(ctx, args[0], args[1])

		case "stats":
			_ = a.Stats(ctx)

		case "bulkdelete":
			_ = a.BulkDelete(ctx, args[0], args[1:])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
