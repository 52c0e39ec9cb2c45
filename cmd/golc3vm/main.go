// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/lassandro/golc3vm/pkg/debugger"
	"github.com/lassandro/golc3vm/pkg/machine"
)

var helpvar bool
var debugvar bool
var tracevar bool
var shouldexit bool

const usage = "golc3vm filename"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.BoolVar(&debugvar, "debug", false, "Runs the machine in a debug CLI")
	flag.BoolVar(&tracevar, "trace", false, "Logs executed instructions to stderr")
	flag.Parse()
}

func golc3vm() int {
	if helpvar {
		fmt.Println(usage)
		return 0
	}

	args := flag.Args()

	if len(args) != 1 {
		log.Println(usage)
		return 1
	}

	file, err := os.Open(args[0])

	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	var mc machine.Machine
	var dh machine.DeviceHandler
	dh.Keyboard = stdinKeyboard()
	dh.Display = bufio.NewWriter(os.Stdout)
	mc.Devices = &dh

	var dbg *debugger.Debugger

	if debugvar || tracevar {
		dbg = &debugger.Debugger{}
		dbg.Binary = file

		if tracevar {
			dbg.Trace = log.New(os.Stderr, "", 0)
		}

		if debugvar {
			dbg.HandleBreak = handleBreak
			dbg.HandleRead = handleRead
			dbg.HandleWrite = handleWrite
		}

		mc.Debugger = dbg
	}

	if err := mc.LoadImage(file); err != nil {
		log.Println(err)
		return 1
	}

	enterRawTerm()
	defer exitRawTerm()

	if debugvar {
		c := make(chan os.Signal, 1)
		defer close(c)

		signal.Notify(c, os.Interrupt)
		go func() {
			for range c {
				fmt.Println()
				dbg.Break = true
			}
		}()

		debugREPL(dbg, &mc)
	}

	for !shouldexit && !mc.State.Halted {
		if err := mc.Step(); err != nil {
			log.Println(err)
			return 1
		}
	}

	return 0
}

func main() {
	os.Exit(golc3vm())
}
