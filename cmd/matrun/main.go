package main

import (
	"github.com/matvid/matrun/internal/cli"
)

func main() {
	cli.Execute()
}
