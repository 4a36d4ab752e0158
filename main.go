package main

import "github.com/ValentinKolb/pine/cmd"

func main() {
	cmd.Execute()
}
