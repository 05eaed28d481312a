package main

import "github.com/bigbadbobbo/foodtruck-api/cmd"

func main() {
	cmd.Execute()
}
