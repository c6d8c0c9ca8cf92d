package utils

// ReservationCodeLength is the length in characters of a generated
// reservation code (hex, so half as many random bytes).
const ReservationCodeLength = 32

// NewReservationCode generates the opaque external handle for a
// reservation: a random hex token, neither sequential nor guessable.
// Uniqueness is enforced by the caller against the store; the 128 bits
// of randomness make retries vanishingly rare.
func NewReservationCode() (string, error) {
	return randomHex(ReservationCodeLength / 2)
}
