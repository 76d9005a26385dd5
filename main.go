package main

import (
	"os"

	"github.com/evination/backoffice/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
