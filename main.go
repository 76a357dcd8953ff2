// Package main is the entry point for the critic CLI.
package main

import "github.com/gspu/critic/cmd"

func main() {
	cmd.Execute()
}
