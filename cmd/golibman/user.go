// User commands: add, get, del, list.
package main

import (
	"github.com/spf13/cobra"

	"github.com/drauger-os/golibman/internal/controller"
	"github.com/drauger-os/golibman/pkg/types"
)

var (
	userUID    int64
	userName   string
	userPhones []string
	userEmails []string
	userAdmin  bool
	userColumn string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user records",
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new user",
	Long: `Add registers a new user with no books checked out.

Example:
  golibman user add --uid 1000 --name "Ada" --email ada@example.org
  golibman user add --uid 1 --name "Librarian" --admin`,
	RunE: runUserAdd,
}

var userGetCmd = &cobra.Command{
	Use:   "get [uid]",
	Short: "Look up users",
	Long: `Get returns every user, or the one matching the given uid.
--column projects a single field instead of the full record.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUserGet,
}

var userDelCmd = &cobra.Command{
	Use:   "del <uid>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE:  runUserDel,
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		replies := ctrl.Dispatch(controller.Envelope{
			Table:   controller.TableUser,
			Command: types.NewGetCommand(nil, types.ColumnAll),
		})
		return printRecords(replies[0])
	},
}

func init() {
	userAddCmd.Flags().Int64Var(&userUID, "uid", 0, "uid for the user (required)")
	userAddCmd.Flags().StringVar(&userName, "name", "", "user name (required)")
	userAddCmd.Flags().StringSliceVar(&userPhones, "phone", nil, "phone number (repeatable)")
	userAddCmd.Flags().StringSliceVar(&userEmails, "email", nil, "email address (repeatable)")
	userAddCmd.Flags().BoolVar(&userAdmin, "admin", false, "grant admin privileges")
	_ = userAddCmd.MarkFlagRequired("uid")
	_ = userAddCmd.MarkFlagRequired("name")

	userGetCmd.Flags().StringVar(&userColumn, "column", "", "project a single column")

	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userGetCmd)
	userCmd.AddCommand(userDelCmd)
	userCmd.AddCommand(userListCmd)
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	user := types.NewUser(userUID, userName)
	user.ContactInfo.PhoneNumbers = append(user.ContactInfo.PhoneNumbers, userPhones...)
	user.ContactInfo.Emails = append(user.ContactInfo.Emails, userEmails...)
	if userAdmin {
		user.Privs = types.PrivsAdmin
	}

	replies := ctrl.Dispatch(controller.Envelope{
		Table:   controller.TableUser,
		Command: types.NewAddCommand(user),
	})
	return reportStatus(replies[0], "add user")
}

func runUserGet(cmd *cobra.Command, args []string) error {
	var filter *types.Filter
	if len(args) == 1 {
		uid, err := parseUID(args[0])
		if err != nil {
			return err
		}
		filter = &types.Filter{Field: "uid", Compare: uid}
	}

	replies := ctrl.Dispatch(controller.Envelope{
		Table:   controller.TableUser,
		Command: types.NewGetCommand(filter, userColumn),
	})
	return printRecords(replies[0])
}

func runUserDel(cmd *cobra.Command, args []string) error {
	uid, err := parseUID(args[0])
	if err != nil {
		return err
	}

	replies := ctrl.Dispatch(controller.Envelope{
		Table:   controller.TableUser,
		Command: types.NewDeleteCommand("uid", uid),
	})
	return reportStatus(replies[0], "delete user")
}
