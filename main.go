package main

import (
	_ "github.com/joho/godotenv/autoload"
	"github.com/jsphweid/miditok/cmd"
)

func main() {
	cmd.Execute()
}
