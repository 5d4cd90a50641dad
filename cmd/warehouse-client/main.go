package main

import "github.com/saimazoom/warehouse-go/internal/adapters/cli"

func main() {
	cli.Execute()
}
