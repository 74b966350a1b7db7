package journalgen

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"gobenford/domain/benford"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 50

	a, err := Generate(cfg)
	require.NoError(t, err)
	b, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, a.Rows, b.Rows)
	assert.Equal(t, a.Amounts, b.Amounts)
}

func TestGenerateShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 25
	cfg.ZeroRows = 5

	ds, err := Generate(cfg)
	require.NoError(t, err)

	assert.Equal(t, []string{"JournalID", "PostedOn", "Account", "Description", "Amount", "AbsoluteAmount"}, ds.Headers)
	require.Len(t, ds.Rows, 25)

	zeros := 0
	for i, amount := range ds.Amounts {
		if amount == 0 {
			zeros++
		}
		assert.Equal(t, fToStr(math.Abs(amount), 2), ds.Rows[i][5], "AbsoluteAmount must be |Amount|")
	}
	assert.Equal(t, 5, zeros)
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 0
	_, err := Generate(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Rows = 10
	cfg.ZeroRows = 11
	_, err = Generate(cfg)
	assert.Error(t, err)
}

func TestGeneratedAmountsRoughlyConform(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 5000

	ds, err := Generate(cfg)
	require.NoError(t, err)

	result := benford.Analyze(ds.Amounts)
	assert.Equal(t, 5000, result.Total)
	// Log-uniform magnitudes across five decades track the prior closely
	assert.Less(t, result.MAD, 0.015)
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Rows = 40
	cfg.ZeroRows = 4

	ds, err := Generate(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "je_samples.xlsx")
	require.NoError(t, WriteXLSX(path, ds))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
