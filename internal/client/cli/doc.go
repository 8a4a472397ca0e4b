// Package cli provides the interactive courtside command-line client.
//
// It wires the client core (session, gateway and resource stores) to a
// small REPL. Typical flow: restore or prompt for a session, then browse
// articles and community threads, comment, and, for admins, moderate.
//
// Key features:
//   - Register / Login / Logout / WhoAmI
//   - Articles, threads and categories, with search
//   - Comment on and uncomment articles and threads
//   - Admin: users, role changes, dashboard stats, bulk delete
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
