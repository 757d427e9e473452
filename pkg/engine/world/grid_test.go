package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStarChartDimensions(t *testing.T) {
	assert.Equal(t, 640, StarChart.Width())
	assert.Equal(t, 640, StarChart.Height())
	assert.Equal(t, 50, StarChart.Count())
}

func TestWorldToTile_RoundTripAtTileOrigin(t *testing.T) {
	for row := 0; row < ChartRows; row++ {
		for col := 0; col < ChartCols; col++ {
			wx, wy := StarChart.TileOrigin(row, col)
			gotRow, gotCol, lx, ly := StarChart.WorldToTile(wx, wy)
			require.Equal(t, [4]int{row, col, 0, 0}, [4]int{gotRow, gotCol, lx, ly}, "tile origin (%d,%d)", row, col)
		}
	}
}

func TestWorldToTile_LocalCoordinates(t *testing.T) {
	row, col, lx, ly := StarChart.WorldToTile(320, 352)
	assert.Equal(t, 5, row)
	assert.Equal(t, 2, col)
	assert.Equal(t, 64, lx)
	assert.Equal(t, 32, ly)
	assert.Equal(t, 27, StarChart.TileIndex(row, col))
}

func TestWorldToTile_OutsideGridIsNotATile(t *testing.T) {
	tests := []struct {
		name   string
		wx, wy int
	}{
		{"right of chart", 640, 10},
		{"below chart", 10, 640},
		{"left of chart", -1, 10},
		{"above chart", 10, -65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, lx, ly := StarChart.WorldToTile(tt.wx, tt.wy)
			assert.False(t, StarChart.IsValidPosition(row, col))
			assert.GreaterOrEqual(t, lx, 0)
			assert.Less(t, lx, TileWidth)
			assert.GreaterOrEqual(t, ly, 0)
			assert.Less(t, ly, TileHeight)
		})
	}
}

func TestRowColInvertsTileIndex(t *testing.T) {
	for i := 0; i < StarChart.Count(); i++ {
		row, col := StarChart.RowCol(i)
		assert.Equal(t, i, StarChart.TileIndex(row, col))
	}
	assert.True(t, StarChart.IsValidIndex(49))
	assert.False(t, StarChart.IsValidIndex(50))
	assert.False(t, StarChart.IsValidIndex(-1))
}
