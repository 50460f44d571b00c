package main

import (
	"log"

	"github.com/ndkhanh/quizroom/internal/bootstrap"
)

func main() {
	app, err := bootstrap.NewApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	app.Start()
}
