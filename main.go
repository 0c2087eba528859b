package main

import "github.com/longkey1/mentorchat/cmd"

func main() {
	cmd.Execute()
}
