package main

import "github.com/ThalesGSN/SecretSanta/internal/cli"

func main() {
	cli.Execute()
}
