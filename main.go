package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cmdhttp "github.com/clinicdesk/clinicdesk_backend/cmd/http"
	cmdsystem "github.com/clinicdesk/clinicdesk_backend/cmd/system"
)

func main() {
	root := &cobra.Command{
		Use:   "clinicdesk",
		Short: "Clinic workflow backend: intake, booking, triage, consultation, pharmacy, billing",
	}

	root.PersistentFlags().String("config", "config.yaml", "Path to the config file")

	root.AddCommand(cmdhttp.NewHTTPCommand())
	root.AddCommand(cmdsystem.NewSystemCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
