package main

import "github.com/deploymenttheory/go-cerealstore/cmd"

func main() {
	cmd.Execute()
}
