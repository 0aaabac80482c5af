// Book commands: add, get, del, list.
package main

import (
	"github.com/spf13/cobra"

	"github.com/drauger-os/golibman/internal/controller"
	"github.com/drauger-os/golibman/pkg/types"
)

var (
	bookUID       int64
	bookName      string
	bookPublished int64
	bookColumn    string
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Manage book records",
}

var bookAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new book",
	Long: `Add inserts a new book record, checked in with an empty history.

Example:
  golibman book add --uid 1000 --name "The Go Programming Language" --published 2015`,
	RunE: runBookAdd,
}

var bookGetCmd = &cobra.Command{
	Use:   "get [uid]",
	Short: "Look up books",
	Long: `Get returns every book, or the one matching the given uid.
--column projects a single field instead of the full record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBookGet,
}

var bookDelCmd = &cobra.Command{
	Use:   "del <uid>",
	Short: "Delete a book",
	Long: `Del removes the book with the given uid. A book that is not
checked in is refused with its current status and holder.`,
	Args: cobra.ExactArgs(1),
	RunE: runBookDel,
}

var bookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all books",
	RunE: func(cmd *cobra.Command, args []string) error {
		replies := ctrl.Dispatch(controller.Envelope{
			Table:   controller.TableBook,
			Command: types.NewGetCommand(nil, types.ColumnAll),
		})
		return printRecords(replies[0])
	},
}

func init() {
	bookAddCmd.Flags().Int64Var(&bookUID, "uid", 0, "uid for the book (required)")
	bookAddCmd.Flags().StringVar(&bookName, "name", "", "book title (required)")
	bookAddCmd.Flags().Int64Var(&bookPublished, "published", 0, "year published")
	_ = bookAddCmd.MarkFlagRequired("uid")
	_ = bookAddCmd.MarkFlagRequired("name")

	bookGetCmd.Flags().StringVar(&bookColumn, "column", "", "project a single column")

	bookCmd.AddCommand(bookAddCmd)
	bookCmd.AddCommand(bookGetCmd)
	bookCmd.AddCommand(bookDelCmd)
	bookCmd.AddCommand(bookListCmd)
}

func runBookAdd(cmd *cobra.Command, args []string) error {
	book := types.NewBook(bookUID, bookName, bookPublished)
	replies := ctrl.Dispatch(controller.Envelope{
		Table:   controller.TableBook,
		Command: types.NewAddCommand(book),
	})
	return reportStatus(replies[0], "add book")
}

func runBookGet(cmd *cobra.Command, args []string) error {
	var filter *types.Filter
	if len(args) == 1 {
		uid, err := parseUID(args[0])
		if err != nil {
			return err
		}
		filter = &types.Filter{Field: "uid", Compare: uid}
	}

	replies := ctrl.Dispatch(controller.Envelope{
		Table:   controller.TableBook,
		Command: types.NewGetCommand(filter, bookColumn),
	})
	return printRecords(replies[0])
}

func runBookDel(cmd *cobra.Command, args []string) error {
	uid, err := parseUID(args[0])
	if err != nil {
		return err
	}

	replies := ctrl.Dispatch(controller.Envelope{
		Table:   controller.TableBook,
		Command: types.NewDeleteCommand("uid", uid),
	})
	return reportStatus(replies[0], "delete book")
}
