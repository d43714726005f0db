package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/PixPMusic/pushmap/internal/config"
	"github.com/PixPMusic/pushmap/internal/mapping"
	"github.com/spf13/cobra"
)

func newShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [mapping-file]",
		Short: "Print the bindings stored in a mapping file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.MappingFile
			if len(args) == 1 {
				path = args[0]
			}
			doc, err := config.LoadDocument(path)
			if err != nil {
				return err
			}

			reg := registryFromConfig(a.cfg.Modules)
			bank := mapping.NewBank(reg, 0)
			defer bank.Close()
			bank.Load(doc)

			printBank(cmd.OutOrStdout(), bank, doc)
			return nil
		},
	}
}

func printBank(w io.Writer, bank *mapping.Bank, doc mapping.Document) {
	if doc.InstanceID != "" {
		fmt.Fprintf(w, "instance %s\n", doc.InstanceID)
	}
	if doc.MIDI != nil {
		fmt.Fprintf(w, "ports in=%q out=%q\n", doc.MIDI.InPort, doc.MIDI.OutPort)
	}

	keys := map[int][]string{}
	groups := bank.Keys.Groups()
	for key, g := range groups {
		if g != 0 {
			keys[g] = append(keys[g], fmt.Sprint(key))
		}
	}

	reg := bank.Registry()
	for g := 1; g < mapping.NumGroups; g++ {
		table := bank.Table(g)
		var lines []string
		for id := 0; id < table.ActiveLength(); id++ {
			slot := table.Slot(id)
			if slot.State(reg) == mapping.SlotUnmapped {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %d: %s", id, slot.Label(reg, false)))
		}
		if len(lines) == 0 && len(keys[g]) == 0 {
			continue
		}
		fmt.Fprintf(w, "group %d", g)
		if len(keys[g]) > 0 {
			fmt.Fprintf(w, " (keys %s)", strings.Join(keys[g], " "))
		}
		fmt.Fprintln(w)
		for _, l := range lines {
			fmt.Fprintln(w, l)
		}
	}
}
