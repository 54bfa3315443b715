package main

import "github.com/lohithgsk/blockchain/app/tooling/cli/cmd"

func main() {
	cmd.Execute()
}
