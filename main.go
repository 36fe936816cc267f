package main

import "github.com/notargets/gowcns/cmd"

func main() {
	cmd.Execute()
}
