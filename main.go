package main

import "github.com/nwalden/planloom/cmd"

func main() {
	cmd.Execute()
}
