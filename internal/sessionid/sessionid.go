// Package sessionid generates sortable identifiers for server sessions.
package sessionid

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
	"sync"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of every generated ID
const Length = 26

// Generator produces UUIDv7 style IDs from a clock and a random source. It is
// safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	clock quartz.Clock
	rng   *rand.Rand
	last  int64
	seq   uint16
}

// NewGenerator returns a Generator. A nil rng draws from the default source.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate returns the next ID. IDs from one Generator sort in creation order.
func (g *Generator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now().UnixMilli()
	if now <= g.last {
		// Same millisecond (or a clock step backwards): keep ordering with the
		// 12-bit sequence.
		now = g.last
		g.seq++
		if g.seq > 0x0fff {
			now++
			g.seq = 0
		}
	} else {
		g.seq = 0
	}
	g.last = now

	var uuid [16]byte

	// 48-bit timestamp
	uuid[0] = byte(now >> 40)
	uuid[1] = byte(now >> 32)
	uuid[2] = byte(now >> 24)
	uuid[3] = byte(now >> 16)
	uuid[4] = byte(now >> 8)
	uuid[5] = byte(now)

	// Version 7 and the 12-bit sequence in place of rand_a
	uuid[6] = 0x70 | byte(g.seq>>8)
	uuid[7] = byte(g.seq)

	for i := 8; i < 16; i++ {
		uuid[i] = byte(g.intN(256))
	}

	// Variant 10
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encodeBase32(uuid)
}

func (g *Generator) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}
	return g.rng.IntN(n)
}

// encodeBase32 encodes 128 bits as 26 characters, 5 bits at a time with two
// zero bits of padding at the end.
func encodeBase32(data [16]byte) string {
	result := make([]byte, Length)
	for i := range Length {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if bitIndex <= 3 {
			value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
		} else {
			value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
			if byteIndex+1 < 16 {
				value |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// Validate checks that id is 26 lowercase Crockford base32 characters.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session ID must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	return nil
}
