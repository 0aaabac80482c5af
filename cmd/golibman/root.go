// Root command for the golibman CLI.
package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/drauger-os/golibman/internal/controller"
	"github.com/drauger-os/golibman/internal/lending"
	"github.com/drauger-os/golibman/internal/paths"
	"github.com/drauger-os/golibman/internal/sqlite"
	"github.com/drauger-os/golibman/internal/worker"
	"github.com/drauger-os/golibman/pkg/types"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// Runtime wiring, initialized by PersistentPreRunE for every command that
// touches the stores.
var (
	settings types.Settings
	backend  *sqlite.Backend
	ctrl     *controller.Controller
)

var rootCmd = &cobra.Command{
	Use:   "golibman",
	Short: "golibman manages a library's books, users, and lending",
	Long: `golibman tracks books, borrowers, and the checkout/checkin/renewal
lifecycle. Records live in two SQLite-backed stores (books and users), each
served by its own sequential command worker; lending operations step through
both stores.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		return startWorkers()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return stopWorkers()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.golibman-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(checkoutCmd)
	rootCmd.AddCommand(checkinCmd)
	rootCmd.AddCommand(renewCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(labelCmd)
}

// startWorkers loads settings, attaches the backend, and brings up the
// user worker, the book worker with its lending engine, and the controller.
func startWorkers() error {
	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	settings, err = loadSettings(configDir)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	if level, err := log.ParseLevel(settings.LogLevel); err == nil {
		log.SetLevel(level)
	}

	dataDir, err := paths.ResolveDataDir(flagDataDir, settings.DataDir)
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	settings.DataDir = dataDir

	backend = sqlite.NewBackend()
	if err := backend.Attach(settings); err != nil {
		return fmt.Errorf("attach backend: %w", err)
	}

	bookStore, err := backend.GetStore(types.BooksTable)
	if err != nil {
		return err
	}
	userStore, err := backend.GetStore(types.UsersTable)
	if err != nil {
		return err
	}

	// The user worker must exist first: the book worker's lending engine
	// sends its user-side step through it.
	users := worker.New(types.UsersTable, userStore).Start()
	books := worker.New(types.BooksTable, bookStore).
		WithLending(lending.NewEngine(bookStore, users, settings)).
		Start()

	ctrl = controller.New(books, users, nil)
	return nil
}

// stopWorkers shuts down the controller's workers and detaches the backend.
func stopWorkers() error {
	if ctrl != nil {
		ctrl.Shutdown()
		ctrl = nil
	}
	if backend != nil {
		return backend.Detach()
	}
	return nil
}
