package utils

import "github.com/velora-cart/velora/models"

// PriceBeforeOffer reconstructs a product's price as it stood before the
// currently applied offer. ProductPrice already has the flat offer folded in,
// so the original discount amount is added back from the list price.
func PriceBeforeOffer(p *models.Product) float64 {
	return p.ProductPrice + p.PreviousPrice*p.FlatOfferDiscount/100
}

// OfferPrice computes the selling price of a product under an offer of the
// given percentage. The discount applies to the pre-offer price, not the list
// price, so stacking an updated offer never compounds with the old one.
func OfferPrice(p *models.Product, discount float64) float64 {
	base := PriceBeforeOffer(p)
	return base - base*discount/100
}

// BaselinePrice computes a product's selling price with no offer applied:
// the list price reduced by the product's own standing discount.
func BaselinePrice(p *models.Product) float64 {
	return p.PreviousPrice - p.PreviousPrice*p.Discount/100
}
