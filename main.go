package main

import "github.com/frahmantamala/moneymappr/cmd"

func main() {
	cmd.Execute()
}
