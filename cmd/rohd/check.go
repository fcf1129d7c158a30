// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RPG-coder-intc/rohd"
	"github.com/RPG-coder-intc/rohd/hwtest"
)

// vectorFile is the YAML schema consumed by check: an optional clock
// name and a list of in/out vectors. Values follow the hwtest vector
// cell kinds; quote binary strings ("0011") so YAML keeps them strings.
type vectorFile struct {
	Clock   string `yaml:"clock"`
	Vectors []struct {
		In  map[string]any `yaml:"in"`
		Out map[string]any `yaml:"out"`
	} `yaml:"vectors"`
}

var checkCmd = &cobra.Command{
	Use:   "check <counter|traffic> <vectors.yaml>",
	Short: "Check a bundled design against a YAML vector file",
	Long: `Applies each vector's inputs to the design, settles (or runs past the
next rising edge of the clock named in the file) and compares outputs.
X or Z bits in an expected value match anything.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		d, err := buildDesign(args[0])
		if err != nil {
			fatal(err)
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			fatal(err)
		}
		var file vectorFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			fatal(errors.Wrap(err, args[1]))
		}

		var clk *rohd.Signal
		if file.Clock != "" {
			if clk = d.sim.Signal(file.Clock); clk == nil {
				fatal(errors.Errorf("unknown clock signal %q", file.Clock))
			}
		}
		vectors := make([]hwtest.Vector, len(file.Vectors))
		for i, v := range file.Vectors {
			vectors[i] = hwtest.Vector{In: v.In, Out: v.Out}
		}

		if err := hwtest.CheckVectors(d.sim, clk, vectors); err != nil {
			fmt.Println(color.RedString("FAIL"), err)
			os.Exit(1)
		}
		fmt.Println(color.GreenString("PASS"), len(vectors), "vectors")
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
