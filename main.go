package main

import (
	"os"

	"github.com/stockroom/stockroom/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
