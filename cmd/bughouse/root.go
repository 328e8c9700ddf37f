// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command bughouse bundles the match server and its companion tools:
// a terminal smoke-test client, player-name validation, BPGN
// processing, and the in-process stress/load-test stubs (spec §6, §1
// Non-goals - the real network transport and a production client are
// external collaborators this binary never implements).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bughouse",
		Short:         "Bughouse chess match server and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")

	root.AddCommand(
		newServerCmd(),
		newClientCmd(),
		newCheckPlayerNameCmd(),
		newProcessBpgnCmd(),
		newStressTestCmd(),
		newLoadTestCmd(),
	)
	return root
}
