package chain

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer holds a private key and exposes the two signing modes the
// protocol uses. SignDigest signs a pre-computed typed-data digest
// directly; SignMessage hashes the payload under the prefixed
// personal-message scheme first. The two are not interchangeable:
// running an order digest through the personal-message path yields a
// valid-looking but semantically wrong signature.
type Signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewSigner creates a Signer from a hex-encoded private key
func NewSigner(privateKeyHex string) (*Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}

	return &Signer{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// Address returns the address of the held key
func (s *Signer) Address() common.Address {
	return s.address
}

// SignDigest signs a pre-computed 32-byte digest. The returned
// signature is 65 bytes: r, s, and a recovery byte of 27 or 28.
func (s *Signer) SignDigest(digest common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(digest.Bytes(), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign digest: %w", err)
	}

	// Recovery id to Ethereum convention
	sig[64] += 27

	return sig, nil
}

// SignMessage signs arbitrary bytes under the EIP-191 personal-message
// scheme. Used for the wallet-ownership proof, never for order digests.
func (s *Signer) SignMessage(message []byte) ([]byte, error) {
	hash := accounts.TextHash(message)

	sig, err := crypto.Sign(hash, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}

	sig[64] += 27

	return sig, nil
}

// SignatureHex renders a signature as a 0x-prefixed hex string for the
// serialization boundary.
func SignatureHex(sig []byte) string {
	return hexutil.Encode(sig)
}
