package main

import "os"

const (
	appName = "FocusFlow"
	appID   = "io.focusflow.app"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
