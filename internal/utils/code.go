package utils

import (
	"math/rand"
	"strings"
	"time"
)

const (
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// TeamCodeLength is the fixed length of a join code.
	TeamCodeLength = 6
)

var seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateTeamCode produces a random join code drawn uniformly from A-Z0-9.
// Codes are not checked for collisions here; the unique index on teams.code
// rejects the rare duplicate at insert time.
func GenerateTeamCode() string {
	var sb strings.Builder
	sb.Grow(TeamCodeLength)
	for i := 0; i < TeamCodeLength; i++ {
		sb.WriteByte(codeCharset[seededRand.Intn(len(codeCharset))])
	}
	return sb.String()
}
