package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestNewHasher_Cost は範囲外のコストがデフォルト値に置き換えられることを検証します。
func TestNewHasher_Cost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewHasher(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewHasher(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, NewHasher(bcrypt.MinCost).cost)
}

// TestHasher_HashAndVerify はハッシュ化したパスワードが同じ平文でのみ検証に成功することを検証します。
func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	passwords := []string{"hunter2", "correct horse battery staple", "pässwörd", " spaces ", "12345"}

	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			t.Parallel()

			digest, err := h.Hash(p)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(digest, "$2"), "digest should be algorithm tagged")
			assert.NotContains(t, digest, p)

			assert.True(t, h.Verify(digest, p))
			assert.False(t, h.Verify(digest, p+"x"))
			assert.False(t, h.Verify(digest, ""))
		})
	}
}

// TestHasher_Hash_Salted は同じパスワードでも毎回異なるダイジェストが生成されることを検証します。
func TestHasher_Hash_Salted(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	d1, err := h.Hash("same-password")
	require.NoError(t, err)
	d2, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
	assert.True(t, h.Verify(d1, "same-password"))
	assert.True(t, h.Verify(d2, "same-password"))
}

// TestHasher_Hash_LongPassword は72バイトを超えるパスワードもハッシュ化・検証できることを検証します。
func TestHasher_Hash_LongPassword(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	tests := []struct {
		name     string
		password string
	}{
		{name: "73 ascii bytes", password: strings.Repeat("a", 73)},
		{name: "multi-byte under 72 characters", password: strings.Repeat("あ", 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			digest, err := h.Hash(tt.password)
			require.NoError(t, err)
			assert.True(t, h.Verify(digest, tt.password))
			// 72バイト以降の差分も区別される
			assert.False(t, h.Verify(digest, tt.password+"x"))
			assert.False(t, h.Verify(digest, tt.password[:72]))
		})
	}
}

// TestHasher_Verify_LegacyPBKDF2 はwerkzeug形式のPBKDF2ダイジェストを検証できることを確認します。
func TestHasher_Verify_LegacyPBKDF2(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	tests := []struct {
		name   string
		digest string
	}{
		{
			name:   "sha256 with iterations",
			digest: "pbkdf2:sha256:150000$S6rJcRYW$f178072fdc0b5cfa4d49158dae2e16bfbb46bcb982af33d3cbe5e9cdd8a2e277",
		},
		{
			name:   "sha512 with iterations",
			digest: "pbkdf2:sha512:1000$abcdEFGH$77449dc7678f4e5c0e189cb0061b3f47f947230752766a14f461a29998ff0de0c8f4fbc1528a5d102e1c217033bfdb9428cab86f13f0b47a9d459c0cae74baf2",
		},
		{
			name:   "sha256 default iterations",
			digest: "pbkdf2:sha256$xyz12345$5cf068061036ab4dca15b315d7c7b0d28c002221dd105f656131144933a78da7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, h.Verify(tt.digest, "correct horse"))
			assert.False(t, h.Verify(tt.digest, "wrong horse"))
		})
	}
}

// TestHasher_Verify_Malformed は不正なダイジェストに対してpanicせずfalseを返すことを検証します。
func TestHasher_Verify_Malformed(t *testing.T) {
	t.Parallel()

	h := NewHasher(bcrypt.MinCost)
	digests := []string{
		"",
		"plaintext",
		"$2a$10$short",
		"pbkdf2:sha256:150000$onlysalt",
		"pbkdf2:md5:1000$salt$abcd",
		"pbkdf2:sha256:notanumber$salt$abcd",
		"pbkdf2:sha256:-5$salt$abcd",
		"pbkdf2:sha256:1000$salt$not-hex",
		"pbkdf2:sha256:1000$salt$",
		"pbkdf2$salt$abcd",
	}

	for _, d := range digests {
		assert.NotPanics(t, func() {
			assert.False(t, h.Verify(d, "correct horse"), "digest %q should not verify", d)
		})
	}
}
