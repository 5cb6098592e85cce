package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/carson-networks/club-budget-server/internal/receipt"
)

var extractCmd = &cobra.Command{
	Use:          "extract [file]",
	Short:        "Print the amount proposed for receipt text read from a file or stdin",
	Args:         cobra.MaximumNArgs(1),
	RunE:         extractCmdF,
	SilenceUsage: true,
}

func init() {
	RootCmd.AddCommand(extractCmd)
}

func extractCmdF(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	text, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read receipt text: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), receipt.Extract(string(text)))
	return err
}
