package main

import "filemanip/cmd"

func main() {
	cmd.Execute()
}
