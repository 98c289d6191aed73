package main

import (
	"github.com/DhavalSuthar-24/tourney/cmd"
	_ "github.com/DhavalSuthar-24/tourney/docs"
)

// @title Tourney REST API
// @version 1.0
// @description Tournament registration with Stripe checkout and webhook reconciliation.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cmd.Execute()
}
