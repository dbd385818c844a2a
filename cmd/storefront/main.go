package main

import "github.com/rogerio-castellano/seller-dashboard/internal/cmd"

// @title Seller Dashboard API
// @version 1.0
// @description JSON view of the logged-in seller's dashboard: stats, chart series and histogram.
// @host localhost:8080
// @BasePath /
func main() {
	cmd.Execute()
}
