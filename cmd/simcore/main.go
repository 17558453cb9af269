// Idiomatic entrypoint for the cobra CLI; all command logic lives in
// internal/cli.
package main

import "github.com/trafficsim/simcore/internal/cli"

func main() {
	cli.Execute()
}
