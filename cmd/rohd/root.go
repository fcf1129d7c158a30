// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RPG-coder-intc/rohd"
)

var (
	maxSimTime  uint64
	settleLimit int
)

var rootCmd = &cobra.Command{
	Use:   "rohd",
	Short: "rohd simulates small four-state hardware designs",
	Long: `rohd elaborates declarative register transfer designs into driver
netlists and runs them on an event driven four-state simulator. The
bundled designs (counter, traffic) demonstrate signal traces, YAML
vector checking and netlist export.`,
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
	os.Exit(1)
}

func envUint64(name string, def uint64) uint64 {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func init() {
	rootCmd.PersistentFlags().Uint64Var(&maxSimTime, "max-time",
		envUint64("ROHD_MAX_SIM_TIME", 200), "simulation time to run designs for")
	rootCmd.PersistentFlags().IntVar(&settleLimit, "settle-limit",
		int(envUint64("ROHD_SETTLE_LIMIT", rohd.DefaultSettleLimit)), "combinational settle sweep cap")
}
