// Package main provides the entry point for the feedshelf CLI.
//
// feedshelf keeps feed subscriptions, grouped into folders, in an OPML file
// and can mirror them into SQLite or PostgreSQL.
//
// Usage:
//
//	feedshelf list
//	feedshelf add https://go.dev/blog/feed.atom --folder Tech
//	feedshelf resolve
//
// See --help for all available options.
package main

// main is the entry point for feedshelf.
func main() {
	Execute()
}
