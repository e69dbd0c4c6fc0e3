//go:build ignore
// +build ignore

package main

import (
	"log"

	firesale "github.com/mithrel/firesale/internal/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	root := firesale.NewRootCmd()

	if err := doc.GenMarkdownTree(root, "./docs/markdown"); err != nil {
		log.Fatal(err)
	}

	header := &doc.GenManHeader{
		Title:   "FIRESALE",
		Section: "1",
	}
	if err := doc.GenManTree(root, header, "./docs/man"); err != nil {
		log.Fatal(err)
	}
}
