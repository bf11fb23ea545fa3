package chain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	testKeyHex  = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func newTestSigner(t *testing.T) *Signer {
	t.Helper()
	s, err := NewSigner(testKeyHex)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	return s
}

func TestNewSignerAddress(t *testing.T) {
	s := newTestSigner(t)
	if got := s.Address().Hex(); got != testAddress {
		t.Errorf("address = %s, want %s", got, testAddress)
	}
}

func TestNewSignerAcceptsPrefix(t *testing.T) {
	s, err := NewSigner("0x" + testKeyHex)
	if err != nil {
		t.Fatalf("NewSigner with 0x prefix: %v", err)
	}
	if s.Address().Hex() != testAddress {
		t.Errorf("address = %s, want %s", s.Address().Hex(), testAddress)
	}
}

func TestNewSignerRejectsGarbage(t *testing.T) {
	if _, err := NewSigner("not-a-key"); err == nil {
		t.Error("expected error for malformed key")
	}
}

func TestSignDigestRecovers(t *testing.T) {
	s := newTestSigner(t)
	digest := SigningHash(SeaportDomain(5), testComponents())

	sig, err := s.SignDigest(digest)
	if err != nil {
		t.Fatalf("SignDigest: %v", err)
	}
	if len(sig) != 65 {
		t.Fatalf("signature length = %d, want 65", len(sig))
	}
	if v := sig[64]; v != 27 && v != 28 {
		t.Fatalf("recovery byte = %d, want 27 or 28", v)
	}

	recovered := recoverAddress(t, digest.Bytes(), sig)
	if recovered != s.Address() {
		t.Errorf("recovered %s, want %s", recovered.Hex(), s.Address().Hex())
	}
}

func TestSignMessageRecovers(t *testing.T) {
	s := newTestSigner(t)
	message := []byte(testAddress)

	sig, err := s.SignMessage(message)
	if err != nil {
		t.Fatalf("SignMessage: %v", err)
	}

	recovered := recoverAddress(t, accounts.TextHash(message), sig)
	if recovered != s.Address() {
		t.Errorf("recovered %s, want %s", recovered.Hex(), s.Address().Hex())
	}
}

func TestSigningModesAreDistinct(t *testing.T) {
	// Running the same 32 bytes through the digest path and the
	// personal-message path must not produce the same signature;
	// mixing the modes silently is the hazard.
	s := newTestSigner(t)
	digest := SigningHash(SeaportDomain(5), testComponents())

	direct, err := s.SignDigest(digest)
	if err != nil {
		t.Fatalf("SignDigest: %v", err)
	}
	prefixed, err := s.SignMessage(digest.Bytes())
	if err != nil {
		t.Fatalf("SignMessage: %v", err)
	}

	if bytes.Equal(direct, prefixed) {
		t.Error("digest-mode and personal-message-mode signatures are equal")
	}
}

func TestSignatureHex(t *testing.T) {
	s := newTestSigner(t)
	sig, err := s.SignMessage([]byte("hello"))
	if err != nil {
		t.Fatalf("SignMessage: %v", err)
	}

	hex := SignatureHex(sig)
	if !strings.HasPrefix(hex, "0x") {
		t.Errorf("hex signature %q lacks 0x prefix", hex)
	}
	if len(hex) != 2+65*2 {
		t.Errorf("hex signature length = %d, want %d", len(hex), 2+65*2)
	}
}

func recoverAddress(t *testing.T, hash, sig []byte) common.Address {
	t.Helper()
	raw := make([]byte, 65)
	copy(raw, sig)
	raw[64] -= 27
	pub, err := crypto.SigToPub(hash, raw)
	if err != nil {
		t.Fatalf("SigToPub: %v", err)
	}
	return crypto.PubkeyToAddress(*pub)
}
