// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RPG-coder-intc/rohd"
)

var netlistCmd = &cobra.Command{
	Use:   "netlist <counter|traffic>",
	Short: "Print the driver netlist of a bundled design as YAML",
	Long: `Exports the per-signal driver resolution of a design: each driven
signal with its width, its default when no branch drives it, and one
entry per driver with the guarding branch path and the expression.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := buildDesign(args[0])
		if err != nil {
			fatal(err)
		}
		out, err := yaml.Marshal(rohd.Netlist(d.blocks...))
		if err != nil {
			fatal(err)
		}
		os.Stdout.Write(out)
	},
}

func init() {
	rootCmd.AddCommand(netlistCmd)
}
