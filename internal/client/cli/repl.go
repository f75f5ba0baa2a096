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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	DeleteAccount(ctx context.Context) error

	ListProfiles(ctx context.Context) error
	SwitchProfile(ctx context.Context, args []string) error
	AddProfile(ctx context.Context) error
	EditProfile(ctx context.Context, args []string) error
	DeleteProfile(ctx context.Context, args []string) error

	Home(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	MyList(ctx context.Context) error
	ToggleList(ctx context.Context, args []string) error
	ContinueWatching(ctx context.Context) error
	Play(ctx context.Context, args []string) error
	ClosePlayer(ctx context.Context) error
	Dismiss(ctx context.Context, args []string) error
}

const (
	helpSignedOut = "Available commands: register, login, help, exit"
	helpSignedIn  = "Available commands: home [movies|series|new], search <q>, mylist, list <id> [movie|tv], " +
		"continue, play <id> [movie|tv], close, dismiss <id>, profiles, switch <id>, addprofile, " +
		"editprofile <id>, delprofile <id>, passwd, deleteaccount, logout, help, exit"
)

// runREPL reads commands from reader until EOF or "exit"/"quit" and
// dispatches them to a. The prompt shows statusFn's output. Handlers prompt
// through the same reader, so it must not be wrapped in another buffer.
//
// Commands other than register, login, help and exit need a signed-in user.
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("notflix %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			report(a.Register(ctx))
			continue
		case "login":
			report(a.Login(ctx))
			continue
		}

		if !a.isLoggedIn() {
			if isCommand(cmd) {
				printlnFn("Please login first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		err = nil
		switch cmd {
		case "logout":
			err = a.Logout(ctx)
		case "passwd":
			err = a.ChangePassword(ctx)
		case "deleteaccount":
			err = a.DeleteAccount(ctx)
		case "profiles":
			err = a.ListProfiles(ctx)
		case "switch":
			err = a.SwitchProfile(ctx, args)
		case "addprofile":
			err = a.AddProfile(ctx)
		case "editprofile":
			err = a.EditProfile(ctx, args)
		case "delprofile":
			err = a.DeleteProfile(ctx, args)
		case "home":
			err = a.Home(ctx, args)
		case "search":
			err = a.Search(ctx, args)
		case "mylist":
			err = a.MyList(ctx)
		case "list":
			err = a.ToggleList(ctx, args)
		case "continue":
			err = a.ContinueWatching(ctx)
		case "play":
			err = a.Play(ctx, args)
		case "close":
			err = a.ClosePlayer(ctx)
		case "dismiss":
			err = a.Dismiss(ctx, args)
		default:
			printlnFn("Unknown command:", cmd)
		}
		report(err)
	}
}

var commands = []string{
	"logout", "passwd", "deleteaccount", "profiles", "switch", "addprofile", "editprofile",
	"delprofile", "home", "search", "mylist", "list", "continue", "play", "close", "dismiss",
}

func isCommand(cmd string) bool {
	for _, c := range commands {
		if c == cmd {
			return true
		}
	}
	return false
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", describe(err))
	}
}
