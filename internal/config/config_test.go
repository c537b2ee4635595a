package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vdparikh/classical"
)

// isolate points HOME and the working directory at empty temp dirs.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	tempDir := t.TempDir()
	home = filepath.Join(tempDir, "home")
	work = filepath.Join(tempDir, "work")
	require.NoError(t, os.Mkdir(home, 0o755))
	require.NoError(t, os.Mkdir(work, 0o755))
	t.Setenv("HOME", home)
	t.Setenv(envAlphabet, "")
	t.Setenv(envLogLevel, "")

	cwd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Chdir(cwd)
	})
	require.NoError(t, os.Chdir(work))
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)
}

func TestLoadPrecedence(t *testing.T) {
	home, work := isolate(t)

	writeFile(t, filepath.Join(home, ".classical", "config.yml"), `
alphabet: cyrillic
log_level: warn
`)
	writeFile(t, filepath.Join(work, LocalFile), `
log_level: debug
profiles:
  grid:
    cipher: grille
    size: 6
`)
	t.Setenv(envLogLevel, "trace")

	cfg, err := Load("")
	require.NoError(t, err)

	// The local file wins over the home file, so its alphabet is the default.
	assert.Equal(t, "latin", cfg.Alphabet)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.Equal(t, classical.Params{Cipher: "grille", Size: 6}, cfg.Profiles["grid"])
	assert.Contains(t, cfg.Profiles, "caesar", "built-in profiles are kept")
}

func TestLoadHomeConfig(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, filepath.Join(home, ".classical", "config.yml"), "alphabet: cyrillic\n")
	t.Setenv(envAlphabet, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "cyrillic", cfg.Alphabet)
}

func TestLoadExplicitPath(t *testing.T) {
	_, work := isolate(t)

	path := filepath.Join(work, "custom.yml")
	writeFile(t, path, `
alphabet: "ABCDEFGHIJKLMNOPQRSTUVWXYZ "
profiles:
  spaced:
    cipher: gronsfeld
    digits: [1, 2, 3]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	p, err := cfg.Profile("spaced")
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGHIJKLMNOPQRSTUVWXYZ ", p.Alphabet)
	assert.Equal(t, []int{1, 2, 3}, p.Digits)

	c, err := classical.New(p)
	require.NoError(t, err)
	encoded, err := c.Encode("MEET ME")
	require.NoError(t, err)
	assert.Equal(t, "NGHUBPF", encoded)

	_, err = Load(filepath.Join(work, "missing.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEnvAlphabet(t *testing.T) {
	isolate(t)
	t.Setenv(envAlphabet, "ru")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ru", cfg.Alphabet)

	p, err := cfg.Profile("caesar")
	require.NoError(t, err)
	c, err := classical.New(p)
	require.NoError(t, err)
	encoded, _ := c.Encode("АБВ")
	assert.Equal(t, "ГДЕ", encoded)
}

func TestLoadInvalid(t *testing.T) {
	_, work := isolate(t)

	cases := map[string]string{
		"unknown key":     "colour: blue\n",
		"bad log level":   "log_level: loud\n",
		"bad alphabet":    "alphabet: ABCA\n",
		"bad profile":     "profiles:\n  broken:\n    cipher: affine\n    a: 13\n",
		"unknown cipher":  "profiles:\n  broken:\n    cipher: enigma\n",
		"malformed yaml":  "profiles: [\n",
		"wrong type":      "profiles:\n  p:\n    cipher: railfence\n    rails: three\n",
		"bad shrink flag": "profiles:\n  p:\n    cipher: reverser\n    block_size: 2\n    shrinking: maybe\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(work, "invalid.yml")
			writeFile(t, path, content)
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestProfile(t *testing.T) {
	cfg := Default()

	p, err := cfg.Profile("lemon")
	require.NoError(t, err)
	assert.Equal(t, "latin", p.Alphabet)
	assert.Equal(t, "LEMON", p.Key)

	_, err = cfg.Profile("nope")
	assert.Error(t, err)

	assert.Equal(t, []string{"caesar", "lemon", "zigzag"}, cfg.ProfileNames())
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Profiles["blocks"] = classical.Params{Cipher: classical.NameReverser, BlockSize: 4, Shrinking: true}

	data, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "block_size: 4")

	var parsed Config
	require.NoError(t, Parse(&parsed, data))
	assert.Equal(t, cfg, parsed)

	require.NoError(t, Parse(&parsed, nil), "empty documents are accepted")
	assert.Equal(t, cfg, parsed)
}
