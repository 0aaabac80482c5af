// Lending commands: checkout, checkin, renew. Each takes a book uid and a
// user uid and goes through the book worker's lending engine.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/drauger-os/golibman/internal/controller"
	"github.com/drauger-os/golibman/pkg/types"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout <book-uid> <user-uid>",
	Short: "Check a book out to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLend(args, types.NewCheckoutCommand, "checkout")
	},
}

var checkinCmd = &cobra.Command{
	Use:   "checkin <book-uid> <user-uid>",
	Short: "Check a book back in",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLend(args, types.NewCheckinCommand, "checkin")
	},
}

var renewCmd = &cobra.Command{
	Use:   "renew <book-uid> <user-uid>",
	Short: "Renew a checked-out book",
	Long: `Renew checks the book in and immediately checks it out again to the
same user, extending the due date. If the checkin is refused, the checkout
does not happen.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLend(args, types.NewRenewCommand, "renew")
	},
}

func runLend(args []string, build func(int64, int64) types.Command, action string) error {
	bookUID, err := parseUID(args[0])
	if err != nil {
		return err
	}
	userUID, err := parseUID(args[1])
	if err != nil {
		return err
	}

	replies := ctrl.Dispatch(controller.Envelope{
		Table:   controller.TableBook,
		Command: build(bookUID, userUID),
	})
	reply := replies[0]

	if reply.Status == types.StatusOK && reply.DueDate != 0 {
		fmt.Printf("%s: ok, due %s\n", action,
			time.Unix(reply.DueDate, 0).Format("2006-01-02"))
		return nil
	}
	return reportStatus(reply, action)
}
