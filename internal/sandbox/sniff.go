package sandbox

import (
	"io"
	"os"
	"unicode/utf8"
)

// sniffLen is how many leading bytes LooksLikeText samples.
const sniffLen = 8192

// LooksLikeText heuristically classifies the file at path as text or binary
// from its first 8 KiB. Empty files are text; any NUL byte means binary;
// more than 10% control characters outside tab/LF/CR means binary; a sample
// that is more than 30% high-bit bytes must additionally be valid UTF-8.
// A read error returns (false, err): the result is indeterminate and
// callers treat it as "not text".
func LooksLikeText(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return false, err
	}
	sample := buf[:n]

	if len(sample) == 0 {
		return true, nil
	}

	var control, highBit int
	for _, b := range sample {
		if b == 0 {
			return false, nil
		}
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			control++
		}
		if b >= 0x80 {
			highBit++
		}
	}

	if control*10 > len(sample) {
		return false, nil
	}

	if highBit*10 > len(sample)*3 {
		return utf8.Valid(trimPartialRune(sample)), nil
	}

	return true, nil
}

// trimPartialRune drops trailing bytes that start a multi-byte UTF-8
// sequence the sample window cut short, so a valid file is not misjudged
// at the 8 KiB boundary.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if r, _ := utf8.DecodeRune(b[i:]); r == utf8.RuneError {
				return b[:i]
			}
			break
		}
	}
	return b
}
