package main

import "modpack-updater/cmd"

func main() {
	cmd.Execute()
}
