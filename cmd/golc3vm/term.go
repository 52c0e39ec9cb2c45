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
	"os"
	"time"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/lassandro/golc3vm/pkg/machine"
)

var termRestore unix.Termios
var termRaw bool

func enterRawTerm() {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return
	}

	if err := termios.Tcgetattr(os.Stdin.Fd(), &termRestore); err != nil {
		panic(err)
	}

	termstate := termRestore

	termstate.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR
	termstate.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	termstate.Cflag &^= unix.CSIZE | unix.PARENB
	termstate.Cflag |= unix.CS8

	// Zero VMIN/VTIME makes stdin reads return immediately, which is what
	// the KBSR poll needs
	termstate.Cc[unix.VMIN] = 0
	termstate.Cc[unix.VTIME] = 0

	if err := termios.Tcsetattr(
		os.Stdin.Fd(), termios.TCSANOW, &termstate,
	); err != nil {
		panic(err)
	}

	termRaw = true
}

func exitRawTerm() {
	if !termRaw {
		return
	}

	if err := termios.Tcsetattr(
		os.Stdin.Fd(), termios.TCSANOW, &termRestore,
	); err != nil {
		panic(err)
	}

	termRaw = false
}

// termKeyboard reads raw single bytes from the controlling terminal
type termKeyboard struct{}

func (termKeyboard) TryReadByte() (byte, bool) {
	buf := make([]byte, 1)

	n, err := os.Stdin.Read(buf)

	if err != nil || n == 0 {
		return 0, false
	}

	return buf[0], true
}

// ReadByte blocks until a byte arrives. Raw mode reads return immediately
// when no byte is pending, so wait on a short interval instead of spinning.
func (kb termKeyboard) ReadByte() (byte, error) {
	buf := make([]byte, 1)

	for {
		n, err := os.Stdin.Read(buf)

		if err != nil {
			return 0, err
		}

		if n > 0 {
			return buf[0], nil
		}

		time.Sleep(5 * time.Millisecond)
	}
}

func stdinKeyboard() machine.Keyboard {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return termKeyboard{}
	}

	// Piped input: no raw mode to set up, deliver the stream as-is
	return machine.ReaderKeyboard{Reader: bufio.NewReader(os.Stdin)}
}
