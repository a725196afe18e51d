// Command lusers looks up users and groups in passwd-style files or in a YAML
// fixture, and turns fixtures into fake etc/ trees for tests.
package main

import (
	"errors"
	"os"

	"github.com/hnrobert/lusers/internal/config"
	"github.com/hnrobert/lusers/internal/logger"
)

func main() {
	root := newRootCommand(config.FromEnv())
	code := exitCode(root.Execute())
	logger.Close()
	os.Exit(code)
}

// exitCode logs err unless it is a lookup miss, which the command has already
// reported on stdout.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, errNotFound) {
		logger.Error("lusers: %v", err)
	}
	return 1
}
