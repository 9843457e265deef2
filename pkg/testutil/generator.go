// Package testutil provides deterministic outline fixture generators.
// All generators take an explicit seed so failures reproduce exactly.
package testutil

import (
	"fmt"
	"math/rand"
	"strings"
)

// GeneratorConfig controls document generation.
type GeneratorConfig struct {
	Seed     int64 // random seed, 0 means 1
	Lines    int   // total line count
	MaxDepth int   // deepest allowed indentation
	WordPool []string
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:     1,
		Lines:    40,
		MaxDepth: 4,
		WordPool: []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta"},
	}
}

// GenerateDocument produces a tab-indented outline document. Depth never
// jumps by more than one level between consecutive lines, so the result
// parses without over-indent divergence.
func GenerateDocument(cfg GeneratorConfig) string {
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	if cfg.Lines <= 0 {
		return ""
	}
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	if len(cfg.WordPool) == 0 {
		cfg.WordPool = DefaultConfig().WordPool
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	var lines []string
	depth := 0
	for i := 0; i < cfg.Lines; i++ {
		if i > 0 {
			switch rng.Intn(3) {
			case 0:
				if depth < cfg.MaxDepth {
					depth++
				}
			case 1:
				if depth > 0 {
					depth -= rng.Intn(depth) + 1
				}
			}
		} else {
			depth = 0
		}
		word := cfg.WordPool[rng.Intn(len(cfg.WordPool))]
		lines = append(lines, strings.Repeat("\t", depth)+fmt.Sprintf("%s-%d", word, i))
	}
	return strings.Join(lines, "\n")
}

// GenerateRaggedDocument produces a document containing blank lines,
// surrounding whitespace and over-indented jumps, for exercising the
// parser's tolerance paths.
func GenerateRaggedDocument(seed int64, lines int) string {
	rng := rand.New(rand.NewSource(seed))
	var out []string
	for i := 0; i < lines; i++ {
		switch rng.Intn(5) {
		case 0:
			out = append(out, "")
		case 1:
			out = append(out, strings.Repeat("\t", rng.Intn(6))+fmt.Sprintf("  item-%d  ", i))
		default:
			out = append(out, strings.Repeat("\t", rng.Intn(3))+fmt.Sprintf("item-%d", i))
		}
	}
	return strings.Join(out, "\n")
}
