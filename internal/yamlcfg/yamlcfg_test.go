package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/weasel/internal/config"
)

func ptr[T any](v T) *T { return &v }

func TestDecode(t *testing.T) {
	// --- Arrange ---
	in := `
length: 64
min_block: 3
space_prob: 0.1
seed: 7
color: never
log:
  level: warn
publish:
  url: ws://localhost:3000/
  namespace: /viewers
`

	// --- Act ---
	got, err := Decode(strings.NewReader(in))

	// --- Assert ---
	require.NoError(t, err)
	want := &config.Settings{
		Length:           ptr(64),
		MinBlock:         ptr(3),
		SpaceProb:        ptr(0.1),
		Seed:             ptr(uint64(7)),
		Color:            ptr("never"),
		LogLevel:         ptr("warn"),
		PublishURL:       ptr("ws://localhost:3000/"),
		PublishNamespace: ptr("/viewers"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Empty(t *testing.T) {
	got, err := Decode(strings.NewReader(""))

	require.NoError(t, err)
	if diff := cmp.Diff(&config.Settings{}, got); diff != "" {
		t.Errorf("Decode() mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"unknown key":         "lenght: 10\n",
		"wrong type":          "length: many\n",
		"negative seed":       "seed: -3\n",
		"publish without url": "publish:\n  event: frame\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(in))
			require.Error(t, err)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weasel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: length\n"), 0o600))

	got, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	require.NotNil(t, got.Strategy)
	require.Equal(t, "length", *got.Strategy)

	_, err = NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
