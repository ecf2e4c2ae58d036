package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "propchat"}

	root.AddCommand(serveCMD(), ingestCMD(), chatCMD())
	_ = root.Execute()
}
