package classical

import "errors"

// Configuration errors are returned by constructors; input errors by a single
// Encode or Decode call. Callers should match them with errors.Is.
var (
	// ErrInvalidAlphabet reports an empty, oversized or duplicate-laden alphabet.
	ErrInvalidAlphabet = errors.New("invalid alphabet")

	// ErrInvalidKey reports a key that cannot configure the cipher.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidInput reports text the cipher refuses to process.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownCipher reports a cipher name missing from the factory.
	ErrUnknownCipher = errors.New("unknown cipher")
)
