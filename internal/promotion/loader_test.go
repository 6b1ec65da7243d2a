package promotion

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeCampaignFile writes a gzipped campaign file for tests.
func writeCampaignFile(t *testing.T, dir, name string, lines []string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gw := gzip.NewWriter(f)
	for _, line := range lines {
		_, err := gw.Write([]byte(line + "\n"))
		require.NoError(t, err)
	}
	require.NoError(t, gw.Close())

	return path
}

func TestFileLoader_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeCampaignFile(t, dir, "campaigns.gz", []string{
		"SPRINGSALE:20",
		"BOXINGDAY:35",
		"",
		"  LAUNCH24 : 10 ",
	})

	loader := NewFileLoader(zerolog.Nop())
	set, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 3, set.Size())

	pct, ok := set.Discount("SPRINGSALE")
	require.True(t, ok)
	assert.Equal(t, 20, pct)

	pct, ok = set.Discount("LAUNCH24")
	require.True(t, ok)
	assert.Equal(t, 10, pct)

	_, ok = set.Discount("MISSING")
	assert.False(t, ok)
}

func TestFileLoader_SkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	path := writeCampaignFile(t, dir, "campaigns.gz", []string{
		"GOOD:15",
		"no-separator",
		"BADPCT:abc",
		"TOOBIG:150",
		"NEGATIVE:-5",
		":20",
	})

	loader := NewFileLoader(zerolog.Nop())
	set, err := loader.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 1, set.Size())
	pct, ok := set.Discount("GOOD")
	require.True(t, ok)
	assert.Equal(t, 15, pct)
}

func TestFileLoader_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), "does/not/exist.gz")
	require.Error(t, err)
}

func TestFileLoader_NotGzip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(path, []byte("CODE:10\n"), 0o644))

	loader := NewFileLoader(zerolog.Nop())
	_, err := loader.Load(context.Background(), path)
	require.Error(t, err)
}

func TestParseCampaignLine(t *testing.T) {
	tests := []struct {
		line     string
		wantCode string
		wantPct  int
		wantOK   bool
	}{
		{"SUMMER:25", "SUMMER", 25, true},
		{"SUMMER:0", "SUMMER", 0, true},
		{"SUMMER:100", "SUMMER", 100, true},
		{"SUMMER:101", "", 0, false},
		{"SUMMER", "", 0, false},
		{"SUMMER:", "", 0, false},
		{":25", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			code, pct, ok := parseCampaignLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantCode, code)
				assert.Equal(t, tt.wantPct, pct)
			}
		})
	}
}
