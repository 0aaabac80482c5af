// Label command: render the scan payload for a record as a QR code PNG.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drauger-os/golibman/internal/barcode"
)

var (
	labelOut  string
	labelSize int
)

var labelCmd = &cobra.Command{
	Use:   "label <book|user> <uid>",
	Short: "Generate a QR label for a book or user",
	Long: `Label renders the identity payload of a record as a QR code PNG,
suitable for printing and later scanning.

Example:
  golibman label book 1000 --out book-1000.png`,
	Args: cobra.ExactArgs(2),
	RunE: runLabel,
}

func init() {
	labelCmd.Flags().StringVar(&labelOut, "out", "", "output file (default: <type>-<uid>.png)")
	labelCmd.Flags().IntVar(&labelSize, "size", barcode.DefaultLabelSize, "image edge length in pixels")
}

func runLabel(cmd *cobra.Command, args []string) error {
	uid, err := parseUID(args[1])
	if err != nil {
		return err
	}

	png, err := barcode.EncodeLabel(args[0], uid, labelSize)
	if err != nil {
		return err
	}

	out := labelOut
	if out == "" {
		out = fmt.Sprintf("%s-%d.png", args[0], uid)
	}
	if err := os.WriteFile(out, png, 0o644); err != nil {
		return fmt.Errorf("write label: %w", err)
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}
