package main

import "github.com/gestion-taller/taller-management/cmd"

func main() {
	cmd.Execute()
}
