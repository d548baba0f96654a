package main

import (
	"github.com/lukemay/quizroom-go/internal/cli"
)

func main() {
	cli.Execute()
}
