package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meigma/gridzip"
)

var packCmd = &cobra.Command{
	Use:   "pack <file>...",
	Short: "Pack files into a ZIP archive without slicing",
	Long: "Pack stores the given files in a ZIP archive as-is. Entries " +
		"are named by the file's base name.",
	Args: cobra.MinimumNArgs(1),
	RunE: runPack,
}

func init() {
	packCmd.Flags().StringP("out", "o", "archive.zip", "Output archive path")

	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) error {
	entries := make([]gridzip.Entry, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		entries = append(entries, gridzip.Entry{
			Name: filepath.Base(path),
			Data: data,
		})
	}

	printer := newProgressPrinter()
	defer printer.Done()

	archive, err := gridzip.Build(entries,
		gridzip.BuildWithLogger(logger),
		gridzip.BuildWithProgress(printer.Func()),
	)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if err := gridzip.Save(out, archive); err != nil {
		return err
	}

	printer.Done()
	fmt.Printf("wrote %s (%d files, %d bytes)\n", out, len(entries), len(archive))
	return nil
}
