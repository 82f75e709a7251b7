package uniuri

import (
	"crypto/rand"
	"path/filepath"
	"strings"
)

// StdLen gives ~103 bits of entropy with StdChars.
const StdLen = 20

// StdChars is the alphabet of New and NewLen.
var StdChars = []byte("abcdefghijklmnopqrstuvwxyz0123456789")

// New returns a random string of StdLen characters.
func New() string {
	return NewLenChars(StdLen, StdChars)
}

// NewLen returns a random string of length characters.
func NewLen(length int) string {
	return NewLenChars(length, StdChars)
}

// NewLenChars returns a random string of length characters taken from
// chars, which must hold 2 to 256 bytes.
func NewLenChars(length int, chars []byte) string {
	if length <= 0 {
		return ""
	}

	clen := len(chars)
	if clen < 2 || clen > 256 {
		panic("uniuri: wrong charset length")
	}

	// bytes above limit are rejected, otherwise the first chars would be
	// more likely than the others
	limit := 255 - (256 % clen)

	out := make([]byte, 0, length)
	buf := make([]byte, length+length/4+1)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic("uniuri: error reading random bytes: " + err.Error())
		}

		for _, b := range buf {
			if int(b) > limit {
				continue
			}

			out = append(out, chars[int(b)%clen])
			if len(out) == length {
				return string(out)
			}
		}
	}
}

// FileName returns a random file name keeping the lower cased extension
// of original.
func FileName(original string) string {
	return New() + strings.ToLower(filepath.Ext(filepath.Base(original)))
}
