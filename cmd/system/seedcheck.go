package system

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinicdesk_backend/config"
	"github.com/clinicdesk/clinicdesk_backend/internal/fixtures"
	"github.com/clinicdesk/clinicdesk_backend/internal/store"
)

// NewSeedCheckCommand loads the fixture data into a throwaway store and
// reports what the server would start with. Useful after editing fixtures.
func NewSeedCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-check",
		Short: "Validate the seed fixtures and print collection counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := cmd.Root().PersistentFlags().GetString("config")
			if err != nil {
				return err
			}
			if _, err := config.ReadConfig(filepath.Dir(cfgPath)); err != nil {
				return fmt.Errorf("config: %w", err)
			}

			st := store.New()
			seed, err := fixtures.Load()
			if err != nil {
				return fmt.Errorf("load fixtures: %w", err)
			}
			if err := fixtures.Apply(st, seed); err != nil {
				return fmt.Errorf("apply fixtures: %w", err)
			}

			fmt.Printf("doctors:      %d\n", len(st.Doctors()))
			fmt.Printf("medicines:    %d\n", len(st.Medicines()))
			fmt.Printf("patients:     %d\n", len(st.Patients()))
			fmt.Printf("appointments: %d\n", len(st.Appointments()))
			fmt.Printf("users:        %d\n", len(seed.Users))
			return nil
		},
	}
}
