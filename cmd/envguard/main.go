// Command envguard validates environments against a schema file and
// documents the variables a service expects.
//
//	envguard check --schema env.schema.yml --env-file .env
//	envguard describe --schema env.schema.yml > ENVIRONMENT.md
//	envguard version
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr, os.Environ()).Execute(); err != nil {
		if !errors.Is(err, errCheckFailed) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}
