package main

import (
	"log"

	"github.com/aussiebroadwan/mercia/internal/clients/app"
)

//go:generate swag init --dir ../../ --generalInfo internal/clients/http/router.go --output ../../api/clients --outputTypes go --packageName clients

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
