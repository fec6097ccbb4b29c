package main

import (
	"os"

	"github.com/address-book/address-book/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
