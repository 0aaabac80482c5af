// Shared helpers for golibman CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/drauger-os/golibman/pkg/types"
)

// parseUID parses a uid argument.
func parseUID(arg string) (int64, error) {
	uid, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid uid %q", arg)
	}
	return uid, nil
}

// printRecords renders a get reply's records or projected values.
func printRecords(reply types.Reply) error {
	if reply.Status != types.StatusOK {
		return fmt.Errorf("store reported status %d", reply.Status)
	}

	if flagJSON {
		out := any(reply.Records)
		if reply.Records == nil {
			out = reply.Values
		}
		encoded, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal records: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	if len(reply.Records) == 0 && len(reply.Values) == 0 {
		fmt.Println("no matching records")
		return nil
	}
	for _, r := range reply.Records {
		switch rec := r.(type) {
		case *types.Book:
			fmt.Printf("book %d: %q (%d), %s\n",
				rec.UID, rec.Name, rec.Published, describeStatus(rec.CheckInStatus))
		case *types.User:
			fmt.Printf("user %d: %q [%s], %d book(s) out\n",
				rec.UID, rec.Name, rec.Privs, len(rec.CheckedOutBooks))
		default:
			fmt.Println(rec)
		}
	}
	for _, v := range reply.Values {
		fmt.Println(v)
	}
	return nil
}

// describeStatus formats a book's availability for terminal output.
func describeStatus(s types.Status) string {
	if s.Status == types.StatusCheckedOut {
		return fmt.Sprintf("checked out to user %d, due %s",
			s.Holder(), time.Unix(s.DueDate, 0).Format("2006-01-02"))
	}
	return s.Status
}

// reportStatus converts a write reply to CLI success or failure.
func reportStatus(reply types.Reply, action string) error {
	switch reply.Status {
	case types.StatusOK:
		fmt.Printf("%s: ok\n", action)
		return nil
	case types.StatusConflict:
		if reply.User != 0 {
			return fmt.Errorf("%s refused: book is %s (held by user %d)", action, reply.Reason, reply.User)
		}
		return fmt.Errorf("%s refused: book is %s", action, reply.Reason)
	default:
		return fmt.Errorf("%s failed", action)
	}
}
