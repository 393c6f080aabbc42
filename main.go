package main

import "github.com/carpediem/console/cmd"

func main() {
	cmd.Execute()
}
