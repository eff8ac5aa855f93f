// Package cli implements the interactive finctl shell.
//
// Commands:
//
//	Not logged in:
//	  - register       — create an account and start a session
//	  - login          — authenticate and start a session
//	Logged in:
//	  - whoami         — show the current account (fetched from the server)
//	  - update         — change name/email
//	  - passwd         — change the password
//	  - refresh        — rotate the token pair
//	  - logout         — end the session (local cleanup always succeeds)
//	Always:
//	  - help, exit/quit
//
// On startup the app hydrates the session from the local database, so a
// previous login survives a restart.
package cli
