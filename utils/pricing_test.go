package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velora-cart/velora/models"
)

func TestBaselinePrice(t *testing.T) {
	p := &models.Product{PreviousPrice: 100, Discount: 10}
	assert.InDelta(t, 90, BaselinePrice(p), 0.001)

	p = &models.Product{PreviousPrice: 250, Discount: 0}
	assert.InDelta(t, 250, BaselinePrice(p), 0.001)
}

func TestPriceBeforeOfferReconstructsPreOfferPrice(t *testing.T) {
	// listed at 100, currently selling at 80 under a 20% offer
	p := &models.Product{PreviousPrice: 100, ProductPrice: 80, FlatOfferDiscount: 20}
	assert.InDelta(t, 100, PriceBeforeOffer(p), 0.001)

	// no offer applied: the selling price is already the pre-offer price
	p = &models.Product{PreviousPrice: 100, ProductPrice: 90, FlatOfferDiscount: 0}
	assert.InDelta(t, 90, PriceBeforeOffer(p), 0.001)
}

func TestOfferPriceDoesNotCompound(t *testing.T) {
	// walk a product through create, update and delete of an offer:
	// listed 100 with 10% standing discount sells at 90
	p := &models.Product{PreviousPrice: 100, Discount: 10}
	p.ProductPrice = BaselinePrice(p)
	assert.InDelta(t, 90, p.ProductPrice, 0.001)

	// a 20% offer is applied to the list price
	p.ProductPrice = p.PreviousPrice - p.PreviousPrice*20/100
	p.FlatOfferDiscount = 20
	assert.InDelta(t, 80, p.ProductPrice, 0.001)

	// raising the offer to 50% reprices from the pre-offer price, so the
	// result is a plain 50%, not 50% on top of 20%
	p.ProductPrice = OfferPrice(p, 50)
	p.FlatOfferDiscount = 50
	assert.InDelta(t, 50, p.ProductPrice, 0.001)

	// removing the offer restores the baseline
	p.ProductPrice = BaselinePrice(p)
	p.FlatOfferDiscount = 0
	assert.InDelta(t, 90, p.ProductPrice, 0.001)
}
