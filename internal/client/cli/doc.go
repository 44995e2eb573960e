// Package cli provides the interactive dashboard shell.
//
// The shell keeps a current location and navigates between the dashboard
// routes. Every protected route goes through the authorization gate, and the
// gate's decision picks what is printed: a loading line, the sign-in page
// (remembering where the user was going), the access-denied page, or the page
// itself.
//
// Commands:
//   - login [admin|user] / logout
//   - open <path> (alias: goto, cd), pages, whoami
//   - theme [toggle|light|dark]
//   - store (list stored keys), reset (sign out and wipe the store)
//   - help, exit | quit
//
// The REPL is started via App.Run(ctx, in), which blocks until the user exits.
// See runREPL for the dispatch loop.
package cli
