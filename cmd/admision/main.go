package main

import "github.com/dgarciab/admision/internal/app/cli"

func main() {
	cli.Execute()
}
