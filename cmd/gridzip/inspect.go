package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/meigma/gridzip"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <archive>",
	Short: "List the entries of a ZIP archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().Bool("verify", false, "Also verify entry checksums")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	archive, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	res, err := gridzip.Inspect(archive)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tCRC32\tOFFSET")
	for _, e := range res.Entries() {
		fmt.Fprintf(w, "%s\t%d\t%08x\t%d\n", e.Name, e.Size, e.CRC32, e.LocalOffset)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d entries, %d data bytes, %d archive bytes\n",
		res.Len(), res.TotalDataBytes(), res.ArchiveSize())

	if verify, _ := cmd.Flags().GetBool("verify"); verify {
		if err := gridzip.Verify(archive); err != nil {
			return err
		}
		fmt.Println("all checksums match")
	}
	return nil
}
