// The main package for the crawlkit executable.
package main

import "github.com/crawlkit/crawlkit/cmd"

func main() {
	cmd.Execute()
}
