// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"os"

	"github.com/z5labs/iniconf/internal/cli"
)

func main() {
	err := cli.New().Run(os.Args[1:]...)
	if err != nil {
		os.Exit(1)
	}
}
