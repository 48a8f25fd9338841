package utils

import (
	"fmt"

	"golang.org/x/exp/rand"
)

// GeneratePin returns a 4-digit PIN for an invited member who did not pick
// one. The inviter reads it back from the response and hands it over out of
// band.
func GeneratePin() string {
	return fmt.Sprintf("%04d", 1000+rand.Intn(9000))
}
