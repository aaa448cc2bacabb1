package cmd

import (
	"context"
	"fmt"

	"github.com/Daskott/sosrelay/server"
	"github.com/Daskott/sosrelay/server/sos"
	"github.com/Daskott/sosrelay/shared"
	"github.com/spf13/cobra"
)

func createContactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "List or replace the emergency contacts in the configured store",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all emergency contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContactStore(false, func(ctx context.Context, store sos.ContactStore) error {
				contacts, err := store.ListAll(ctx)
				if err != nil {
					return err
				}

				for _, contact := range contacts {
					fmt.Fprintf(cmd.OutOrStdout(), "%v\t%v\n", contact.ID, contact.PhoneNumber)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "replace <phone-number>...",
		Short: "Delete all emergency contacts & replace them with the given phone numbers",
		Long: `Delete all emergency contacts & replace them with the given phone numbers.

Only the sqlite & firestore drivers are supported. The memory store lives
inside the server process, so use POST /addContacts on the running server instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContactStore(true, func(ctx context.Context, store sos.ContactStore) error {
				if err := store.ReplaceAll(ctx, args); err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%v contact(s) saved\n", len(args))
				return nil
			})
		},
	})

	return cmd
}

// withContactStore opens the configured store for 'run'. When 'persistentOnly' is set,
// the memory driver is rejected since writes to it would be lost when the command exits.
func withContactStore(persistentOnly bool, run func(context.Context, sos.ContactStore) error) error {
	ctx := context.Background()

	config, err := loadServerConfig(cfgFile, isDevEnv)
	if err != nil {
		return err
	}

	if persistentOnly && config.Store.Driver == shared.MEMORY_STORE {
		return fmt.Errorf("the '%v' store only lives inside the server process, use POST /addContacts on the running server", shared.MEMORY_STORE)
	}

	store, closeStore, err := server.OpenContactStore(ctx, config, isDevEnv)
	if err != nil {
		return err
	}
	defer closeStore()

	return run(ctx, store)
}
