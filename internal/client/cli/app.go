// Package cli is the interactive terminal front-end of the Skyjo client:
// a command loop over the session manager plus the game-session placeholder.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/olivierdt/skyjo-cli/internal/client/api"
	"github.com/olivierdt/skyjo-cli/internal/client/config"
	"github.com/olivierdt/skyjo-cli/internal/client/game"
	"github.com/olivierdt/skyjo-cli/internal/client/session"
	"github.com/olivierdt/skyjo-cli/internal/client/storage"
	"github.com/olivierdt/skyjo-cli/internal/logging"
)

// App wires the session manager, the game session and the interactive loop.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	client  api.Client
	manager *session.Manager
	game    *game.Session
	reader  *bufio.Reader
}

// NewApp builds the client: opens the local database, constructs the API
// client and the session manager, and registers the navigation hooks that
// react to sign-in/sign-out transitions.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	db, err := storage.Open(context.Background(), cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	client := api.NewRestClient(cfg.APIBaseURL, cfg.RequestTimeout)
	manager := session.NewManager(client, db, log)

	a := &App{
		config:  cfg,
		log:     log,
		db:      db,
		client:  client,
		manager: manager,
		game:    game.NewSession(cfg.GameSocketURL, log),
		reader:  bufio.NewReader(os.Stdin),
	}

	// Navigation reacts to transitions pushed by the manager instead of
	// polling derived booleans.
	manager.OnAuthenticated(func(u session.User) {
		printlnFn(fmt.Sprintf("Hello %s! Type 'create' to start a game.", u.Username))
	})
	manager.OnLoggedOut(func() {
		printlnFn("You are signed out. Type 'login' to sign in again.")
	})

	return a, nil
}

// Run verifies any stored token, then enters the command loop until EOF or
// an exit command.
func (a *App) Run(ctx context.Context) {
	printlnFn("Skyjo client (type 'help' for commands)")

	a.manager.Initialize(ctx)
	if s := a.manager.State(); !s.IsAuthenticated() {
		printlnFn("Type 'login' to sign in or 'register' to create an account.")
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// Close releases the game connection, the API client and the local database.
func (a *App) Close() error {
	_ = a.game.Close()
	_ = a.client.Close()
	return a.db.Close()
}

// status renders the prompt decoration, mirroring the header of the app:
// loading indicator, signed-in username, or nothing.
func (a *App) status() string {
	s := a.manager.State()
	switch {
	case s.Loading:
		return "(loading)"
	case s.User != nil:
		return "(" + s.User.Username + ")"
	default:
		return ""
	}
}

func (a *App) isAuthenticated() bool {
	return a.manager.IsAuthenticated()
}

// requireAuth is the route guard for protected commands: loading states
// block, anonymous users are redirected to login.
func (a *App) requireAuth() bool {
	s := a.manager.State()
	if s.Loading || s.Status == session.StatusUnknown {
		printlnFn("Loading...")
		return false
	}
	if !s.IsAuthenticated() {
		printlnFn("You must sign in first. Type 'login' to continue.")
		return false
	}
	return true
}

// showOutcome prints the outcome of the last auth operation and clears it,
// the way the modal of the original app consumed messages.
func (a *App) showOutcome() {
	if msg := a.manager.State().Message; msg != nil {
		printlnFn(msg.Text)
		a.manager.ResetMessage()
	}
}
