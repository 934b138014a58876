// Package cli implements the interactive gophfav client: a small REPL that
// registers, logs in and manages the caller's favourites over the HTTP API.
//
// Commands
//
//	register           create an account (prompts for name and password twice)
//	login              authenticate and keep the token for this session
//	list | l           show favourites
//	add <id>           add an item
//	remove <id>        remove an item
//	logout             forget the token
//	exit | quit        leave the program
package cli
