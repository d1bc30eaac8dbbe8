package main

import (
	"os"

	"github.com/caraban-app/caraban-api/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
