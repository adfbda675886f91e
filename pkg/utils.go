package pkg

import "math/rand"

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandString generates a random code of n characters, used for room ids.
func RandString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}
