package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. Tests replace it
// with a capturing stub.
var printlnFn = fmt.Println

// execIface is the minimal command surface the REPL dispatches to. The
// real App satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isUser() bool
	isBusiness() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Forgot(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Buy(ctx context.Context) error
	Sell(ctx context.Context) error
	MyListings(ctx context.Context) error
	Profile(ctx context.Context) error
	Withdraw(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads a line, dispatches the first token as a command and
// loops until EOF or exit/quit. Errors from command handlers are
// ignored here; handlers print their own messages, which keeps the loop
// itself free of error plumbing.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("foodflow> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			switch {
			case a.isUser():
				printlnFn("Available commands: (l)ist, search <text>, buy, profile, logout, exit")
			case a.isBusiness():
				printlnFn("Available commands: sell, listings, withdraw, profile, logout, exit")
			default:
				printlnFn("Available commands: (l)ist, search <text>, login, signup, forgot, exit")
			}

		case "l", "list":
			_ = a.List(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "buy":
			_ = a.Buy(ctx)

		case "sell":
			_ = a.Sell(ctx)

		case "listings":
			_ = a.MyListings(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "withdraw":
			_ = a.Withdraw(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
