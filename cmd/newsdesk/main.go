package main

import (
	"os"

	"github.com/hallyupress/newsdesk/cmd"
	"github.com/hallyupress/newsdesk/internal/colors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		colors.Error(err.Error())
		os.Exit(1)
	}
}
