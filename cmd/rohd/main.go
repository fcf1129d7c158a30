// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command rohd elaborates the bundled demo designs and runs them on the
// event driven four-state simulator: signal traces, vector file checks
// and netlist export.
//
package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// .env overrides for ROHD_* defaults; missing file is fine
	_ = godotenv.Load()
	Execute()
}
