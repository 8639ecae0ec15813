// Copyright 2024 Fortio Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command speedrun-cli is a line-oriented reference embedder: it drives a
// Timer from stdin commands (start, split, skip, undo, pause, reset, quit)
// and prints the resulting phase and split index after each one. It exists
// to exercise the core's public API end to end, the same role
// fortio_main.go plays for periodic in the teacher repo — it is explicitly
// not a hotkey or auto-splitter front-end.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"fortio.org/cli"
	"fortio.org/log"

	"fortio.org/speedrun/clock"
	"fortio.org/speedrun/config"
	"fortio.org/speedrun/run"
	"fortio.org/speedrun/segment"
	"fortio.org/speedrun/timer"
	"fortio.org/speedrun/version"
)

// demoRun is the fixed three-segment run the CLI always starts from; a real
// embedder would load one from a saved file instead. Game/category/platform
// come from config so an embedder can override them with flags without this
// package knowing anything about fortio.org/dflag.
func demoRun() *run.Run {
	r := run.New()
	r.GameName = config.DemoGameName.Get()
	r.CategoryName = config.DemoCategoryName.Get()
	r.Metadata.PlatformName = config.DemoPlatformName.Get()
	for _, name := range []string{"Opening", "Midgame", "Ending"} {
		r.PushSegment(segment.New(name))
	}
	return r
}

// Main runs one interactive session over stdin/stdout. Factored out of main
// so testscript can register it as a subprocess command.
func Main() int {
	cli.ProgramName = "speedrun-cli"
	cli.ArgsHelp = ""
	cli.MinArgs = 0
	cli.MaxArgs = 0
	cli.Main()

	r := demoRun()
	tm, err := timer.New(r, clock.Default)
	if err != nil {
		log.Errf("speedrun-cli: %v", err)
		return 1
	}
	fmt.Printf("speedrun-cli %s: %s - %s (%d segments)\n", version.Short(), r.GameName, r.CategoryName, r.Len())

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "start":
			tm.SplitOrStart()
		case "split":
			tm.Split()
		case "skip":
			tm.SkipSplit()
		case "undo":
			tm.UndoSplit()
		case "pause":
			tm.TogglePauseOrStart()
		case "reset":
			tm.Reset(true)
		case "quit", "exit":
			return 0
		default:
			fmt.Printf("unknown command %q\n", line)
			continue
		}
		fmt.Printf("phase=%s split=%d\n", tm.Phase(), tm.CurrentSplitIndex())
	}
	return 0
}

func main() {
	os.Exit(Main())
}
