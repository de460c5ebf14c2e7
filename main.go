package main

import (
	"os"

	"github.com/GoTodoAPI/GoTodoAPI/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
