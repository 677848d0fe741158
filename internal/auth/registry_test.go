package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-rest-pipeline/internal/config"
	"github.com/MKhiriev/go-rest-pipeline/internal/crypto"
	"github.com/MKhiriev/go-rest-pipeline/internal/mock"
	"github.com/MKhiriev/go-rest-pipeline/models"
)

func TestKeyRegistry_LookupFirstMatchWins(t *testing.T) {
	r := NewKeyRegistry(
		models.KeyEntry{Label: "svcB", Key: "shared"},
		models.KeyEntry{Label: "svcA", Key: "shared"},
		models.KeyEntry{Label: "svcC", Key: "own"},
	)

	for i := 0; i < 3; i++ {
		label, ok := r.Lookup("shared")
		require.True(t, ok)
		assert.Equal(t, "svcB", label)
	}

	label, ok := r.Lookup("own")
	assert.True(t, ok)
	assert.Equal(t, "svcC", label)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestKeyRegistry_EmptyNeverMatches(t *testing.T) {
	r := NewKeyRegistry(models.KeyEntry{Label: "blank", Key: ""})

	_, ok := r.Lookup("")
	assert.False(t, ok)

	var nilRegistry *KeyRegistry
	_, ok = nilRegistry.Lookup("x")
	assert.False(t, ok)
	assert.Zero(t, nilRegistry.Len())
	assert.Nil(t, nilRegistry.Entries())
}

func TestKeyRegistry_Allow(t *testing.T) {
	r := NewKeyRegistry(
		models.KeyEntry{Label: "svcA", Key: "a"},
		models.KeyEntry{Label: "SESSION", Key: "s"},
		models.KeyEntry{Label: "svcB", Key: "b"},
	)

	assert.Same(t, r, r.Allow(nil))

	only := r.Allow([]string{"svcB", "SESSION", "unknown"})
	assert.Equal(t, []models.KeyEntry{{Label: "svcB", Key: "b"}}, only.Entries())

	assert.Zero(t, r.Allow([]string{}).Len())
}

func TestKeyRegistry_EntriesIsCopy(t *testing.T) {
	r := NewKeyRegistry(models.KeyEntry{Label: "svcA", Key: "a"})
	entries := r.Entries()
	entries[0].Key = "changed"

	label, ok := r.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "svcA", label)
}

func TestParseRegistry(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    []models.KeyEntry
		wantErr bool
	}{
		{
			name: "json keeps order",
			doc:  "{\n\t\"zeta\": \"k1\",\n\t\"alpha\": \"k2\",\n\t\"mid\": \"k1\"\n}",
			want: []models.KeyEntry{{Label: "zeta", Key: "k1"}, {Label: "alpha", Key: "k2"}, {Label: "mid", Key: "k1"}},
		},
		{
			name: "yaml keeps order",
			doc:  "zeta: k1\nalpha: k2\n",
			want: []models.KeyEntry{{Label: "zeta", Key: "k1"}, {Label: "alpha", Key: "k2"}},
		},
		{name: "empty document", doc: "", want: nil},
		{name: "json null", doc: "null", want: nil},
		{name: "json array", doc: `["a"]`, wantErr: true},
		{name: "json non-string key", doc: `{"a": 1}`, wantErr: true},
		{name: "json duplicate label", doc: `{"a": "x", "a": "y"}`, wantErr: true},
		{name: "yaml sequence", doc: "- a\n- b\n", wantErr: true},
		{name: "yaml nested value", doc: "a:\n  b: c\n", wantErr: true},
		{name: "yaml duplicate label", doc: "a: x\na: y\n", wantErr: true},
		{name: "not a document", doc: "a: [", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseRegistry([]byte(tt.doc))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedRegistry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Entries())
		})
	}
}

func TestLoadRegistryFile_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	require.NoError(t, os.WriteFile(path, []byte("svcA: abc123\n"), 0o600))

	r, err := LoadRegistryFile(path, "", nil)
	require.NoError(t, err)

	label, ok := r.Lookup("abc123")
	assert.True(t, ok)
	assert.Equal(t, "svcA", label)

	_, err = LoadRegistryFile(filepath.Join(t.TempDir(), "missing"), "", nil)
	assert.Error(t, err)
}

func TestLoadRegistryFile_Sealed(t *testing.T) {
	sealer := crypto.NewSealer()
	blob, err := sealer.Seal([]byte(`{"svcA":"abc123"}`), "pass")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "keys.sealed")
	require.NoError(t, os.WriteFile(path, []byte(blob+"\n"), 0o600))

	r, err := LoadRegistryFile(path, "pass", sealer)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	_, err = LoadRegistryFile(path, "wrong", sealer)
	assert.Error(t, err)
}

func TestLoadRegistry_FromConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r, err := LoadRegistry(config.Auth{KeysJSON: `{"svcA":"abc123"}`}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Len())

	r, err = LoadRegistry(config.Auth{}, nil)
	require.NoError(t, err)
	assert.Zero(t, r.Len())

	path := filepath.Join(t.TempDir(), "keys.sealed")
	require.NoError(t, os.WriteFile(path, []byte("blob"), 0o600))

	sealer := mock.NewMockSealer(ctrl)
	sealer.EXPECT().Open("blob", "pass").Return([]byte("svcB: k\n"), nil)

	r, err = LoadRegistry(config.Auth{KeysFile: path, KeysPassphrase: "pass"}, sealer)
	require.NoError(t, err)
	assert.Equal(t, []models.KeyEntry{{Label: "svcB", Key: "k"}}, r.Entries())
}
