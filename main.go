package main

import "dnsdb-cli/cmd"

func main() {
	cmd.Execute()
}
