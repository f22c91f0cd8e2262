package main

import "github.com/vibast-solutions/ms-go-reader/cmd"

func main() {
	cmd.Execute()
}
