package main

import (
	"github.com/spf13/cobra"
)

func gazetteerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gazetteer",
		Short: "Print the active gazetteer as YAML",
		Long: `Print the gazetteer the engine classifies with: US states and
abbreviations, known countries, country aliases, the ordered keyword rules
for aircraft, flight phase and weather, and the adverse weather labels.

The output is a valid --gazetteer file. Edit a section and pass the file
back to replace that section; omitted sections keep their built-in values.

Example:
  crashetl gazetteer > gazetteer.yaml
  crashetl gazetteer --gazetteer custom.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := loadGazetteer(cmd)
			if err != nil {
				return err
			}
			return g.WriteYAML(cmd.OutOrStdout())
		},
	}
}
