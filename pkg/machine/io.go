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

package machine

import (
	"bufio"
	"io"
)

// ReaderKeyboard adapts a buffered byte stream into a Keyboard. The poll
// reports no byte once the stream is exhausted and the blocking read
// surfaces the stream error, so piped program input ends the run instead of
// hanging it. Tests feed keyboards from in-memory readers the same way.
type ReaderKeyboard struct {
	Reader *bufio.Reader
}

func (kb ReaderKeyboard) TryReadByte() (byte, bool) {
	if kb.Reader == nil {
		return 0, false
	}

	key, err := kb.Reader.ReadByte()

	if err != nil {
		return 0, false
	}

	return key, true
}

func (kb ReaderKeyboard) ReadByte() (byte, error) {
	if kb.Reader == nil {
		return 0, io.EOF
	}

	return kb.Reader.ReadByte()
}
