package cli

import (
	"context"
)

// Create opens a game session on the server. The command is protected: the
// guard redirects anonymous users to login. The connection reuses the
// persisted bearer token as its credential, read through the session
// manager rather than from storage directly.
func (a *App) Create(ctx context.Context) error {
	if !a.requireAuth() {
		return nil
	}

	token, err := a.manager.Token(ctx)
	if err != nil {
		a.log.Error(ctx, "failed to read stored token", "error", err)
		printlnFn("Could not open a game session.")
		return err
	}

	username := ""
	if u := a.manager.State().User; u != nil {
		username = u.Username
	}

	if err := a.game.Connect(ctx, token, username); err != nil {
		a.log.Error(ctx, "failed to connect to game server", "error", err)
		printlnFn("WebSocket status: Disconnected")
		return err
	}

	printlnFn("WebSocket status: Connected")
	printlnFn("Session id: " + a.game.ID())
	return nil
}
