// Command alarm-clock runs the terminal alarm clock and its control API.
package main

import "github.com/oshokin/alarm-clock/cmd/alarm-clock/cmd"

func main() {
	cmd.Execute()
}
