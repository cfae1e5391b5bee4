package booksclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsistentPrice(t *testing.T) {
	t.Parallel()

	ids := []string{"", "a", "zyTCAlFPjgYC", "fFCjDQAAQBAJ", "a-very-long-volume-identifier-0123456789"}
	for _, id := range ids {
		first := ConsistentPrice(id)
		assert.Equal(t, first, ConsistentPrice(id), "price for %q must be stable", id)
		assert.GreaterOrEqual(t, first, 9.99)
		assert.LessOrEqual(t, first, 29.98)
	}

	assert.NotEqual(t, ConsistentPrice("vol-1"), ConsistentPrice("vol-2"))
}

func TestUnitPriceResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vol  Volume
		want float64
	}{
		{
			name: "retail price wins",
			vol: Volume{ID: "vol-1", SaleInfo: &SaleInfo{
				RetailPrice: &Price{Amount: 12.99},
				ListPrice:   &Price{Amount: 15.99},
			}},
			want: 12.99,
		},
		{
			name: "list price when no retail",
			vol:  Volume{ID: "vol-1", SaleInfo: &SaleInfo{ListPrice: &Price{Amount: 15.99}}},
			want: 15.99,
		},
		{
			name: "hash fallback when no sale info",
			vol:  Volume{ID: "vol-1"},
			want: ConsistentPrice("vol-1"),
		},
		{
			name: "hash fallback when prices are zero",
			vol:  Volume{ID: "vol-1", SaleInfo: &SaleInfo{RetailPrice: &Price{}, ListPrice: &Price{}}},
			want: ConsistentPrice("vol-1"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.vol.UnitPrice())
		})
	}
}

func TestImageURLPrefersLargest(t *testing.T) {
	t.Parallel()

	vol := Volume{VolumeInfo: VolumeInfo{ImageLinks: &ImageLinks{
		SmallThumbnail: "small-thumb",
		Thumbnail:      "thumb",
		Medium:         "medium",
	}}}
	assert.Equal(t, "medium", vol.ImageURL())

	vol.VolumeInfo.ImageLinks.Large = "large"
	assert.Equal(t, "large", vol.ImageURL())

	assert.Empty(t, (&Volume{}).ImageURL())
}

func TestSummaryFlattensVolume(t *testing.T) {
	t.Parallel()

	vol := Volume{
		ID: "vol-1",
		VolumeInfo: VolumeInfo{
			Title:       "The Go Programming Language",
			Authors:     []string{"Alan Donovan"},
			Description: "A guide.",
			ImageLinks:  &ImageLinks{Thumbnail: "thumb"},
		},
		SaleInfo: &SaleInfo{RetailPrice: &Price{Amount: 31.99}},
	}

	got := vol.Summary()
	assert.Equal(t, "vol-1", got.ID)
	assert.Equal(t, "The Go Programming Language", got.Title)
	assert.Equal(t, 31.99, got.Price)
	assert.Equal(t, "thumb", got.Image)
}
