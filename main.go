package main

import "github.com/CSCI-GA-2820-SP25-003/customers/cmd"

func main() {
	cmd.Execute()
}
