// Package main writes CLI reference pages for the faredrop and fdt command
// trees, as markdown or man pages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	faredrop "github.com/venkatadeepikapotu/faredrop-tracker/cmd/faredrop/cmd"
	fdt "github.com/venkatadeepikapotu/faredrop-tracker/cmd/fdt/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory")
	format := flag.String("format", "markdown", "output format (markdown, man)")
	flag.Parse()

	roots := map[string]*cobra.Command{
		"faredrop": faredrop.Root(),
		"fdt":      fdt.Root(),
	}

	for name, root := range roots {
		dir := filepath.Join(*output, name)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			log.Fatalf("creating output directory: %v", err)
		}
		root.DisableAutoGenTag = true

		if err := generate(root, dir, *format); err != nil {
			log.Fatalf("generating %s docs: %v", name, err)
		}
	}

	fmt.Printf("CLI docs generated in %s/\n", *output)
}

func generate(root *cobra.Command, dir, format string) error {
	switch format {
	case "markdown":
		return doc.GenMarkdownTree(root, dir)
	case "man":
		return doc.GenManTree(root, &doc.GenManHeader{Title: root.Name(), Section: "1"}, dir)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
