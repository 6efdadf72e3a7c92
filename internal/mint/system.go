// system.go - The proving system behind the mint pipeline.
//
// The rest of the package talks to Groth16 through two narrow capabilities:
// produce a proof from a witness, or check a proof against a public-input
// vector. System is the gnark-backed implementation of both. Keys are built
// (or loaded) once at process start and shared read-only afterwards.

package mint

import (
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/pkg/errors"
)

// ProofSystem produces a proof from a mint witness, or fails.
type ProofSystem interface {
	Prove(w *Witness) (groth16.Proof, error)
}

// VerifyingOracle checks a proof against an ordered public-input vector.
type VerifyingOracle interface {
	Verify(proof groth16.Proof, publicInputs []fr.Element) error
}

// Artifact file names inside a parameter directory.
const (
	constraintsFile  = "mint_ccs.bin"
	provingKeyFile   = "mint_pk.bin"
	verifyingKeyFile = "mint_vk.bin"
)

// System holds the compiled mint circuit and its Groth16 key pair.
// Immutable after construction; safe for concurrent use.
type System struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

// Setup compiles the mint circuit and runs the Groth16 setup. Heavy; run
// once per process (or once ever, via Save/Load).
func Setup() (*System, error) {
	ccs, err := frontend.Compile(ecc.BLS12_381.ScalarField(), r1cs.NewBuilder, &Circuit{})
	if err != nil {
		return nil, errors.Wrap(err, "compiling mint circuit")
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, errors.Wrap(err, "groth16 setup")
	}
	return &System{ccs: ccs, pk: pk, vk: vk}, nil
}

// Save persists the constraint system and key pair into dir.
func (s *System) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := writeArtifact(filepath.Join(dir, constraintsFile), s.ccs); err != nil {
		return err
	}
	if err := writeArtifact(filepath.Join(dir, provingKeyFile), s.pk); err != nil {
		return err
	}
	return writeArtifact(filepath.Join(dir, verifyingKeyFile), s.vk)
}

// Load reads a previously saved proving system from dir.
func Load(dir string) (*System, error) {
	ccs := groth16.NewCS(ecc.BLS12_381)
	if err := readArtifact(filepath.Join(dir, constraintsFile), ccs); err != nil {
		return nil, err
	}
	pk := groth16.NewProvingKey(ecc.BLS12_381)
	if err := readArtifact(filepath.Join(dir, provingKeyFile), pk); err != nil {
		return nil, err
	}
	vk := groth16.NewVerifyingKey(ecc.BLS12_381)
	if err := readArtifact(filepath.Join(dir, verifyingKeyFile), vk); err != nil {
		return nil, err
	}
	return &System{ccs: ccs, pk: pk, vk: vk}, nil
}

// LoadVerifier reads only the verifying key from dir. The returned system
// can verify but not prove.
func LoadVerifier(dir string) (*System, error) {
	vk := groth16.NewVerifyingKey(ecc.BLS12_381)
	if err := readArtifact(filepath.Join(dir, verifyingKeyFile), vk); err != nil {
		return nil, err
	}
	return &System{vk: vk}, nil
}

// Prove builds the full assignment from the witness and runs the Groth16
// prover. Any rejection aborts with ErrProofGeneration; no partial result
// escapes.
func (s *System) Prove(w *Witness) (groth16.Proof, error) {
	if s.ccs == nil || s.pk == nil {
		return nil, errors.Wrap(ErrProofGeneration, "proving system loaded without proving key")
	}
	assignment := w.assignment()
	fullWitness, err := frontend.NewWitness(assignment, ecc.BLS12_381.ScalarField())
	if err != nil {
		return nil, errors.Wrapf(ErrProofGeneration, "building witness: %v", err)
	}
	proof, err := groth16.Prove(s.ccs, s.pk, fullWitness)
	if err != nil {
		return nil, errors.Wrapf(ErrProofGeneration, "groth16 prove: %v", err)
	}
	return proof, nil
}

// Verify feeds the ordered public-input vector to the Groth16 verifier.
// Every cryptographic failure maps to ErrVerification.
func (s *System) Verify(proof groth16.Proof, publicInputs []fr.Element) error {
	if len(publicInputs) != NumPublicInputs {
		return errors.Wrapf(ErrVerification, "want %d public inputs, got %d", NumPublicInputs, len(publicInputs))
	}

	publicWitness, err := witness.New(ecc.BLS12_381.ScalarField())
	if err != nil {
		return errors.Wrapf(ErrVerification, "building public witness: %v", err)
	}
	values := make(chan any, len(publicInputs))
	for i := range publicInputs {
		values <- publicInputs[i]
	}
	close(values)
	if err := publicWitness.Fill(NumPublicInputs, 0, values); err != nil {
		return errors.Wrapf(ErrVerification, "filling public witness: %v", err)
	}

	if err := groth16.Verify(proof, s.vk, publicWitness); err != nil {
		return ErrVerification
	}
	return nil
}

func writeArtifact(path string, artifact io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if _, err := artifact.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}

func readArtifact(path string, artifact io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	if _, err := artifact.ReadFrom(f); err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return nil
}
