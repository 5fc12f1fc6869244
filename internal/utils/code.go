package utils

import "crypto/rand"

// codeAlphabet excludes nothing: collisions are handled by the unique index
// on reservations.code plus a retry at the call site.
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewReservationCode returns a code of the form "R-7K2QMD": a fixed prefix
// followed by six random characters from [0-9A-Z].
func NewReservationCode() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 0, 8)
	out = append(out, 'R', '-')
	for _, b := range buf {
		out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
	}
	return string(out), nil
}
