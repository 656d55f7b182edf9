package main

import "github.com/rnwolfe/fuhl/cmd"

func main() {
	cmd.Execute()
}
