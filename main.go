package main

import (
	"os"

	"github.com/kube-rca/llm-service/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
