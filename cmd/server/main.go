package main

import (
	"flag"
	"log"

	"github.com/tierlab/ranklist/internal/server"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	if err := server.Run(*configPath); err != nil {
		log.Fatal(err)
	}
}
