// Scan command: resolve a scanned identity against the book or user store.
// Without camera hardware the CLI reads payload lines from stdin; each line
// stands in for one decoded barcode frame.
package main

import (
	"bufio"
	"bytes"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/drauger-os/golibman/internal/barcode"
)

var scanTimeout time.Duration

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Resolve a scanned barcode to its record",
	Long: `Scan waits for one barcode payload, looks the uid up in whichever
store the payload names (book or user), and prints that record.

Payloads are JSON objects like {"type": "book", "uid": 1000}, read one per
line from stdin.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 10*time.Second, "how long to wait for a payload")
}

func runScan(cmd *cobra.Command, args []string) error {
	scanner := barcode.NewScanner(
		&lineSource{reader: bufio.NewScanner(cmd.InOrStdin())},
		lineDecoder{},
		100*time.Millisecond,
	).Start()

	ctrl.WithScanner(scanner).WithScanTimeout(scanTimeout)
	return printRecords(ctrl.GetBarcode())
}

// lineSource yields one stdin line per frame.
type lineSource struct {
	reader *bufio.Scanner
}

func (s *lineSource) Frame() ([]byte, error) {
	if s.reader.Scan() {
		return s.reader.Bytes(), nil
	}
	if err := s.reader.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// lineDecoder treats a non-empty frame as one already-decoded payload.
type lineDecoder struct{}

func (lineDecoder) Decode(frame []byte) [][]byte {
	trimmed := bytes.TrimSpace(frame)
	if len(trimmed) == 0 {
		return nil
	}
	return [][]byte{trimmed}
}
