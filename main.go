package main

import "kb-admin/cmd"

func main() {
	cmd.Execute()
}
