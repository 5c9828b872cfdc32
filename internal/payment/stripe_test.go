package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1000), minorUnits(decimal.RequireFromString("10.00")))
	assert.Equal(t, int64(125), minorUnits(decimal.RequireFromString("1.25")))
	assert.Equal(t, int64(300), minorUnits(decimal.RequireFromString("3")))
	//明細単位で丸める
	assert.Equal(t, int64(33), minorUnits(decimal.RequireFromString("0.333")))
}

func TestBuildLineItems_AppendsFeeAndTax(t *testing.T) {
	data := CheckoutData{
		Items: []CheckoutItem{
			{
				DishID:    "dish-1",
				Name:      "Pasta Carbonara",
				UnitPrice: decimal.RequireFromString("10.00"),
				Quantity:  2,
			},
		},
		DeliveryFee: decimal.RequireFromString("3.00"),
		Tax:         decimal.RequireFromString("1.25"),
	}

	items := buildLineItems(data)
	if !assert.Len(t, items, 3) {
		return
	}

	assert.Equal(t, "Pasta Carbonara", *items[0].PriceData.ProductData.Name)
	assert.Equal(t, int64(1000), *items[0].PriceData.UnitAmount)
	assert.Equal(t, int64(2), *items[0].Quantity)
	assert.Equal(t, "dish-1", items[0].PriceData.ProductData.Metadata["dishId"])

	//配送料と税は数量1の合成明細
	assert.Equal(t, "Delivery Fee", *items[1].PriceData.ProductData.Name)
	assert.Equal(t, int64(300), *items[1].PriceData.UnitAmount)
	assert.Equal(t, "delivery-fee", items[1].PriceData.ProductData.Metadata["dishId"])

	assert.Equal(t, "Tax (5%)", *items[2].PriceData.ProductData.Name)
	assert.Equal(t, int64(125), *items[2].PriceData.UnitAmount)
	assert.Equal(t, "tax", items[2].PriceData.ProductData.Metadata["dishId"])
	assert.Equal(t, int64(1), *items[2].Quantity)
}
