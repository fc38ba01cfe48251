package main

import (
	"github.com/joho/godotenv"
	"github.com/repogroom/repogroom/cmd"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
