package main

import (
	"log"

	"github.com/homevolt/homevolt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
