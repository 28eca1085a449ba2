package main

import "github.com/adityarahman/celengan/cmd"

func main() {
	cmd.Execute()
}
