package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmentCASA(t *testing.T) {
	tests := []struct {
		name       string
		lines      []string
		wantBlocks int
		wantFirst  []int
	}{
		{
			name: "two transactions with detail lines",
			lines: []string{
				"05 Apr 2025 TRF TO INDAH ROSALIA -5,000,000.00 15,000,000.00",
				"1234567890123 BNINIDJA",
				"bayar jasa",
				"07 Apr 2025 TRANSFER DARI PT MAJU 2,000,000.00 17,000,000.00",
			},
			wantBlocks: 2,
			wantFirst:  []int{3, 1},
		},
		{
			name: "noise before first start line is dropped",
			lines: []string{
				"random continuation text",
				"05 Apr 2025 BILL PAYMENT -250,000.00 16,750,000.00",
			},
			wantBlocks: 1,
			wantFirst:  []int{1},
		},
		{
			name: "boilerplate removed inside block",
			lines: []string{
				"05 Apr 2025 BILL PAYMENT -250,000.00 16,750,000.00",
				"Page 2 of 5",
				"kartu kredit",
			},
			wantBlocks: 1,
			wantFirst:  []int{2},
		},
		{
			name: "date-like line with bad date stays block content",
			lines: []string{
				"05 Apr 2025 TRF TO TOKO ABC -100,000.00 16,650,000.00",
				"99 Xyz 2025 not a date",
			},
			wantBlocks: 1,
			wantFirst:  []int{2},
		},
		{
			name:       "empty input",
			lines:      nil,
			wantBlocks: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Segment(tt.lines, FormatCASA)
			require.Len(t, blocks, tt.wantBlocks)
			for i, want := range tt.wantFirst {
				assert.Len(t, blocks[i].Lines, want)
			}
		})
	}
}

func TestSegmentSingleLineBlock(t *testing.T) {
	blocks := Segment([]string{
		"05 Apr 2025 CREDIT INTEREST 1,234.00 16,651,234.00",
	}, FormatCASA)

	require.Len(t, blocks, 1)
	assert.Equal(t, "05 Apr 2025 CREDIT INTEREST 1,234.00 16,651,234.00", blocks[0].First())
	assert.Empty(t, blocks[0].Rest())
}

func TestEveryLineLandsInExactlyOneBlockOrIsDropped(t *testing.T) {
	lines := []string{
		"05 Apr 2025 TRF TO A -1.00 2.00",
		"detail one",
		"06 Apr 2025 TRF TO B -1.00 1.00",
		"detail two",
		"detail three",
	}

	blocks := Segment(lines, FormatCASA)
	require.Len(t, blocks, 2)

	total := 0
	for _, b := range blocks {
		total += len(b.Lines)
	}
	assert.Equal(t, len(lines), total)
}
