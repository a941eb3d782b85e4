// @title           Task Manager API
// @version         1.0
// @description     Projects and tasks scoped to the authenticated user.
// @host            localhost:5000
// @BasePath        /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"fmt"
	"os"

	_ "github.com/pmboard/taskmanager-api/docs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
