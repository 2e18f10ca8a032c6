// CLI entry point for BiasLens.
package main

import "github.com/turtacn/BiasLens-Intelligence/internal/interfaces/cli"

func main() {
	cli.Execute()
}
