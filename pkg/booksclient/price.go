package booksclient

import "math"

// ConsistentPrice derives a stable price between 9.99 and 29.98 from
// the volume id, for records the vendor carries no price data for. The
// same id always hashes to the same price.
func ConsistentPrice(bookID string) float64 {
	var h int32
	for _, b := range []byte(bookID) {
		h = h*31 + int32(b)
	}

	cents := int64(h)
	if cents < 0 {
		cents = -cents
	}
	price := float64(cents%2000)/100 + 9.99
	return math.Round(price*100) / 100
}

// UnitPrice resolves the price to charge for a volume: vendor retail
// price, then vendor list price, then the hash fallback.
func (v *Volume) UnitPrice() float64 {
	if v.SaleInfo != nil {
		if v.SaleInfo.RetailPrice != nil && v.SaleInfo.RetailPrice.Amount > 0 {
			return v.SaleInfo.RetailPrice.Amount
		}
		if v.SaleInfo.ListPrice != nil && v.SaleInfo.ListPrice.Amount > 0 {
			return v.SaleInfo.ListPrice.Amount
		}
	}
	return ConsistentPrice(v.ID)
}

// ImageURL picks the best available cover image, largest first. Empty
// when the record has none.
func (v *Volume) ImageURL() string {
	links := v.VolumeInfo.ImageLinks
	if links == nil {
		return ""
	}
	for _, u := range []string{links.Large, links.Medium, links.Small, links.Thumbnail, links.SmallThumbnail} {
		if u != "" {
			return u
		}
	}
	return ""
}

// Summary is the flattened, price-resolved view of a volume that the
// shop serves and indexes.
type Summary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors,omitempty"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Price       float64  `json:"price"`
	Image       string   `json:"image,omitempty"`
}

func (v *Volume) Summary() Summary {
	return Summary{
		ID:          v.ID,
		Title:       v.VolumeInfo.Title,
		Authors:     v.VolumeInfo.Authors,
		Description: v.VolumeInfo.Description,
		Categories:  v.VolumeInfo.Categories,
		Price:       v.UnitPrice(),
		Image:       v.ImageURL(),
	}
}
