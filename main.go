package main

import (
	"repack-catalog/cmd"
	"repack-catalog/logger"

	_ "go.uber.org/automaxprocs/maxprocs"
)

func main() {
	logger.InitLogger(false) // Initialize the logger first; --verbose reconfigures it
	defer logger.Sync()      // Ensure logs are flushed on exit
	cmd.Execute()
}
