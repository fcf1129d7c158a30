// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RPG-coder-intc/rohd"
)

var demoCmd = &cobra.Command{
	Use:   "demo <counter|traffic>",
	Short: "Run a bundled design and print its signal trace",
	Long: `Runs one of the bundled designs for --max-time time units and prints
one line per change of a traced signal. Undefined values show in red.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := buildDesign(args[0])
		if err != nil {
			fatal(err)
		}
		for _, sig := range d.trace {
			sig := sig
			d.sim.Probe(sig, func(t uint64, v rohd.LogicValue) {
				fmt.Printf("%s %-8s = %s\n", color.CyanString("[%6d]", t), sig.Name(), paint(v))
			})
		}
		if d.stim != nil {
			if err := d.stim(); err != nil {
				fatal(err)
			}
		}
		if err := d.sim.Run(maxSimTime); err != nil {
			fatal(err)
		}
		fmt.Printf("%s t=%d", color.GreenString("done"), d.sim.Now())
		for _, sig := range d.trace {
			fmt.Printf("  %s=%s", sig.Name(), sig.Value())
		}
		fmt.Println()
	},
}

func paint(v rohd.LogicValue) string {
	if v.IsValid() {
		return color.GreenString(v.String())
	}
	return color.RedString(v.String())
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
