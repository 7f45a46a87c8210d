package statement

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saring-audit/saring/internal/common"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		wantFormat string
	}{
		{
			name:       "casa statement",
			page:       "PT BANK CIMB NIAGA Tbk\nLaporan Rekening / Statement of Account\nOCTO Savers",
			wantFormat: "casa",
		},
		{
			name:       "bni statement",
			page:       "PT Bank Negara Indonesia (Persero) Tbk\nLaporan Mutasi Rekening",
			wantFormat: "bni",
		},
		{
			name:       "span statement outscores plain bni markers",
			page:       "Mutasi Transaksi (01-04-2025 s.d 30-04-2025)\nRekening Satker : BADAN BAHASA (123)\nRekening Induk : KEMENTERIAN (456)\nSPAN",
			wantFormat: "span",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, conf, err := Detect(tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, f.Name)
			assert.Greater(t, conf, 0.0)
			assert.LessOrEqual(t, conf, 1.0)
		})
	}
}

func TestDetectUnknown(t *testing.T) {
	_, _, err := Detect("completely unrelated text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnknownFormat))
}

func TestDetectFileFallback(t *testing.T) {
	tests := []struct {
		filename   string
		wantFormat string
	}{
		{"SPAN_April_2025.txt", "span"},
		{"BNI_statement.txt", "bni"},
		{"OCTO_rekening.txt", "casa"},
	}

	for _, tt := range tests {
		f, conf, err := DetectFile(tt.filename, "no markers here")
		require.NoError(t, err, tt.filename)
		assert.Equal(t, tt.wantFormat, f.Name)
		assert.Equal(t, 0.8, conf)
	}

	_, _, err := DetectFile("mystery.txt", "no markers here")
	require.Error(t, err)
}

func TestGet(t *testing.T) {
	f, err := Get("casa")
	require.NoError(t, err)
	assert.Equal(t, FormatCASA, f)

	f, err = Get("SPAN")
	require.NoError(t, err)
	assert.Equal(t, FormatSPAN, f)

	_, err = Get("bogus")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrUnknownFormat))
}
