// Package identity mints the anonymous voter tokens browsers keep between visits.
// Tokens are opaque and unauthenticated; any non-empty string is accepted as an identity.
package identity

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/google/uuid"
)

var adjectives = []string{
	"amber", "bold", "brave", "bright", "calm", "clever", "cosmic", "curious", "daring", "eager",
	"fancy", "gentle", "glad", "golden", "happy", "honest", "jolly", "keen", "lively", "lucky",
	"mellow", "merry", "misty", "nimble", "noble", "proud", "quiet", "rapid", "shiny", "silent",
	"sleepy", "snowy", "spry", "sunny", "swift", "tidy", "vivid", "warm", "witty", "zesty",
}

var names = []string{
	"ada", "alan", "ansel", "berenice", "brassai", "cindy", "diane", "dorothea", "edward", "elliott",
	"eve", "fan", "gordon", "grace", "henri", "imogen", "irving", "julia", "lee", "margaret",
	"man", "nan", "paul", "robert", "sally", "saul", "sebastiao", "steve", "tina", "vivian",
	"walker", "weegee", "william", "yousuf", "zanele",
}

var colors = []string{
	"aqua", "azure", "beige", "black", "blue", "bronze", "coral", "crimson", "cyan", "gold",
	"gray", "green", "indigo", "ivory", "jade", "lavender", "lime", "magenta", "maroon", "olive",
	"orange", "peach", "pink", "plum", "purple", "red", "rose", "ruby", "salmon", "silver",
	"tan", "teal", "turquoise", "violet", "white", "yellow",
}

// New returns a lower-case adjective-name-color token with a short random suffix.
func New() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:4]
	return strings.Join([]string{pick(adjectives), pick(names), pick(colors), suffix}, "-")
}

// Normalize trims a client supplied token and reports whether it is usable.
// Only blank tokens are refused.
func Normalize(raw string) (string, bool) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", false
	}
	return token, true
}

func pick(words []string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
	if err != nil {
		return words[0]
	}
	return words[n.Int64()]
}
