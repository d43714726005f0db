package cli

import (
	"fmt"

	"github.com/PixPMusic/pushmap/internal/midi"
	"github.com/spf13/cobra"
)

func newPortsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List MIDI input and output ports",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			m := midi.NewManager()
			defer m.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "inputs:")
			for _, name := range m.ListInPorts() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "outputs:")
			for _, name := range m.ListOutPorts() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}
}
