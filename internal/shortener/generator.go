package shortener

import (
	"fmt"
	"math/rand/v2"

	"github.com/jaevor/go-nanoid"
)

// codeAlphabet is the case-sensitive alphanumeric code alphabet.
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// CodeGenerator produces a random short code.
type CodeGenerator func() string

// Generator produces random codes with a length drawn uniformly from
// [minLen, maxLen]. Randomness targets collision resistance, not secrecy.
type Generator struct {
	gens []func() string
}

// NewGenerator creates a generator for the given length range.
func NewGenerator(minLen, maxLen int) (*Generator, error) {
	if minLen < 1 || minLen > maxLen {
		return nil, fmt.Errorf("invalid code length range [%d, %d]", minLen, maxLen)
	}

	gens := make([]func() string, 0, maxLen-minLen+1)

	for length := minLen; length <= maxLen; length++ {
		gen, err := nanoid.CustomASCII(codeAlphabet, length)
		if err != nil {
			return nil, fmt.Errorf("build code generator for length %d: %w", length, err)
		}

		gens = append(gens, gen)
	}

	return &Generator{gens: gens}, nil
}

// Generate returns a new random alphanumeric code.
func (g *Generator) Generate() string {
	return g.gens[rand.IntN(len(g.gens))]()
}
