// Package cli is the interactive console of the oposiciones client.
//
// The REPL restores a stored session on start, so a user who logged in
// earlier keeps working until the refresh token expires. When the API
// client reports the session as lost, the console drops back to the
// logged-out prompt.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
