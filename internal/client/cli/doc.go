// Package cli provides the interactive Notflix command-line client.
//
// It wires configuration, the local session database, the backend client,
// the catalog gateway and the player, then runs a REPL on top of the
// services.App state. Typical flow: restore the persisted session, start a
// background connectivity watcher, and execute user commands.
//
// Key features:
//   - Register / Login / Logout, password change, account deletion
//   - Profiles: list, switch, add, edit, delete
//   - Browse shelves and search the catalog
//   - My List and Continue Watching
//   - Play a title and close the player
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
