package main

import (
	"os"
)

// @title Travel Agency API
// @version 1.0
// @description Clients, trips and trip registrations.
// @host localhost:8080
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
