// Package runid generates identifiers for tournament runs. IDs are UUIDv7
// values written as 26 characters of lowercase Crockford base32, so they sort
// by creation time both as bytes and as strings.
package runid

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of an encoded ID.
const Length = 26

// New returns a fresh run ID.
func New() string {
	return Encode(uuid.Must(uuid.NewV7()))
}

// Encode writes id as a 130-bit base32 number: two zero bits followed by the
// 128 bits of the UUID, five bits per character.
func Encode(id uuid.UUID) string {
	var out [Length]byte
	for i := range out {
		var v byte
		for b := 0; b < 5; b++ {
			v <<= 1
			bit := i*5 + b - 2
			if bit >= 0 && id[bit/8]&(0x80>>(bit%8)) != 0 {
				v |= 1
			}
		}
		out[i] = alphabet[v]
	}
	return string(out[:])
}

// Parse decodes an ID produced by Encode.
func Parse(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := Validate(s); err != nil {
		return id, err
	}
	for i := 0; i < Length; i++ {
		v := strings.IndexByte(alphabet, s[i])
		for b := 0; b < 5; b++ {
			bit := i*5 + b - 2
			if bit < 0 {
				continue
			}
			if v&(0x10>>b) != 0 {
				id[bit/8] |= 0x80 >> (bit % 8)
			}
		}
	}
	return id, nil
}

// Validate checks that s has the shape of an encoded ID.
func Validate(s string) error {
	if len(s) != Length {
		return fmt.Errorf("run ID must be exactly %d characters, got %d", Length, len(s))
	}
	// The two leading bits are always zero.
	if s[0] > '7' {
		return fmt.Errorf("run ID first character must be 0-7, got %c", s[0])
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return fmt.Errorf("invalid character %q at position %d", s[i], i)
		}
	}
	return nil
}

// Time returns the creation time embedded in a run ID, to the millisecond.
func Time(s string) (time.Time, error) {
	id, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	if id.Version() != 7 {
		return time.Time{}, fmt.Errorf("run ID is a version %d UUID, not 7", id.Version())
	}
	var ms int64
	for _, b := range id[:6] {
		ms = ms<<8 | int64(b)
	}
	return time.UnixMilli(ms), nil
}
