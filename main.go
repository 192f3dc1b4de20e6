package main

import (
	"log"

	"github.com/lodteam/screening-bot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
