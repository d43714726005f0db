package main

import (
	"os"

	"github.com/PixPMusic/pushmap/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
