package main

import (
	"log"

	"petcare-wallet/internal/app"
)

func main() {
	a, err := app.NewWorker()
	if err != nil {
		log.Fatal("error creating an application instance: ", err)
	}

	if err := a.Run(); err != nil {
		log.Fatal("worker startup error: ", err)
	}
}
