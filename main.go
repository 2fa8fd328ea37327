// Package main is the entry point for the gymlog CLI.
// It signs users in against the workout backend and exposes exercises,
// history and profile management as terminal commands.
package main

import (
	"gymlog/cli/cmd"
)

func main() {
	cmd.Execute()
}
