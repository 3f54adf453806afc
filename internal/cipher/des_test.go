package cipher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecryptBlockIsEncryptInverse(t *testing.T) {
	var key [8]byte
	copy(key[:], "11111111")
	keys := expandKey(key)

	var block [8]byte
	copy(block[:], "testdata")

	// encryptBlock is decryptBlock with the round-key schedule reversed.
	encrypted := encryptBlock(block, keys)
	roundTripped := decryptBlock(encrypted, keys)
	require.Equal(t, block, roundTripped)
}

func TestDecryptHeaderFindsMatchingTrialKey(t *testing.T) {
	for _, candidate := range keyTrialCandidates {
		var key [8]byte
		copy(key[:], candidate)

		plain := make([]byte, 0x20)
		copy(plain[4:8], "8202")
		cipherBytes := Encrypt(plain, key)

		decrypted, foundKey, err := DecryptHeader(cipherBytes)
		require.NoError(t, err)
		require.Equal(t, candidate, foundKey)
		require.Equal(t, "8202", string(decrypted[4:8]))
	}
}

func TestDecryptHeaderFailsWithNoMatchingKey(t *testing.T) {
	garbage := make([]byte, 0x20)
	for i := range garbage {
		garbage[i] = byte(i)
	}
	_, _, err := DecryptHeader(garbage)
	require.Error(t, err)
}
