// errors.go - Error taxonomy of the mint proof pipeline.
//
// Every failure surfaces as exactly one of these classes, wrapped with
// context. Nothing downgrades an error into a partial result: a failed
// build yields no bundle, a failed decode yields no fields, and a failed
// verification is fatal for that exact byte sequence.

package mint

import "github.com/pkg/errors"

var (
	// ErrProofGeneration reports that the proving system rejected the
	// witness or failed internally. Retrying requires a freshly built
	// witness and fresh randomness.
	ErrProofGeneration = errors.New("mint: proof generation failed")

	// ErrDecode reports malformed bytes, a non-canonical scalar or point
	// encoding, or an invalid asset identifier while reading an encoded
	// proof. The whole read is rejected.
	ErrDecode = errors.New("mint: malformed mint proof encoding")

	// ErrVerification reports a structurally valid proof that does not
	// satisfy its reconstructed public inputs.
	ErrVerification = errors.New("mint: proof verification failed")
)
