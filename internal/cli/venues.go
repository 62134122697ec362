package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newVenuesCmd creates the venues command
func newVenuesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "Print the venue registry",
		RunE:  runVenues,
	}
}

func runVenues(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}

	return WriteVenues(os.Stdout, reg.All(), format)
}
