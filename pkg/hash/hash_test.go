package hash_test

import (
	"discounts/pkg/hash"
	"testing"

	"github.com/stretchr/testify/require"
)

func hashers(t *testing.T) map[string]hash.Hasher {
	t.Helper()

	bc, err := hash.New(hash.ProviderBcrypt, 4) // min cost to keep the test fast
	require.NoError(t, err)
	ar, err := hash.New(hash.ProviderArgon2id, 0)
	require.NoError(t, err)

	return map[string]hash.Hasher{
		"bcrypt":   bc,
		"argon2id": ar,
	}
}

func TestHasher_RoundTrip(t *testing.T) {
	t.Parallel()

	for name, h := range hashers(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			hashed, err := h.Hash("s3cret-password")
			require.NoError(t, err)
			require.NotEmpty(t, hashed)
			require.NotEqual(t, "s3cret-password", hashed)

			require.True(t, h.Compare("s3cret-password", hashed))
			require.False(t, h.Compare("wrong-password", hashed))
		})
	}
}

func TestHasher_SaltedNonDeterminism(t *testing.T) {
	t.Parallel()

	for name, h := range hashers(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			first, err := h.Hash("same-plaintext")
			require.NoError(t, err)
			second, err := h.Hash("same-plaintext")
			require.NoError(t, err)

			// random salts make repeated hashes differ
			require.NotEqual(t, first, second)
			require.True(t, h.Compare("same-plaintext", first))
			require.True(t, h.Compare("same-plaintext", second))
		})
	}
}

func TestHasher_MalformedHashComparesFalse(t *testing.T) {
	t.Parallel()

	malformed := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=1,p=4$short",
		"$argon2id$v=19$m=65536,t=1,p=4$!!!$!!!",
		"$2a$totally$bogus",
	}
	for name, h := range hashers(t) {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, stored := range malformed {
				require.False(t, h.Compare("anything", stored), "hash %q should compare false", stored)
			}
		})
	}
}

func TestHasher_CrossProviderComparesFalse(t *testing.T) {
	t.Parallel()

	hs := hashers(t)
	bcryptHash, err := hs["bcrypt"].Hash("pw")
	require.NoError(t, err)
	argonHash, err := hs["argon2id"].Hash("pw")
	require.NoError(t, err)

	require.False(t, hs["argon2id"].Compare("pw", bcryptHash))
	require.False(t, hs["bcrypt"].Compare("pw", argonHash))
}

func TestNew_UnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := hash.New("sha1", 0)
	require.Error(t, err)
}
