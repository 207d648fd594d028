// Package main is the entry point for the nextroutes CLI.
package main

import "github.com/abdul-hamid-achik/nextroutes/cmd/nextroutes/commands"

func main() {
	commands.Execute()
}
