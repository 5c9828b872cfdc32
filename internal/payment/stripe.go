package payment

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
)

const (
	metaKeyUserID       = "userId"
	metaKeyAddressID    = "addressId"
	metaKeyRestaurantID = "restaurantId"
	metaKeyOrderData    = "orderData"
	metaKeyItemCount    = "itemCount"
	metaKeySubtotal     = "subtotal"
	metaKeyDeliveryFee  = "deliveryFee"
	metaKeyTax          = "tax"
	metaKeyTotal        = "total"
)

type StripeGateway struct {
	sc          *client.API
	frontendURL string
	logger      zerolog.Logger
}

func NewStripeGateway(apiKey string, frontendURL string, logger zerolog.Logger) *StripeGateway {
	sc := &client.API{}
	sc.Init(apiKey, nil)

	return &StripeGateway{
		sc:          sc,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, data CheckoutData) (CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          buildLineItems(data),
		SuccessURL:         stripe.String(g.frontendURL + "/order-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:          stripe.String(g.frontendURL),
		CustomerCreation:   stripe.String(string(stripe.CheckoutSessionCustomerCreationIfRequired)),
	}
	params.Context = ctx

	md := data.Metadata
	params.AddMetadata(metaKeyUserID, md.UserID)
	params.AddMetadata(metaKeyAddressID, md.AddressID)
	params.AddMetadata(metaKeyRestaurantID, md.RestaurantID)
	params.AddMetadata(metaKeyOrderData, md.OrderData)
	params.AddMetadata(metaKeyItemCount, strconv.Itoa(md.ItemCount))

	//金額はここで確定した文字列をそのまま持ち回る。確定時に逆算しない
	params.AddMetadata(metaKeySubtotal, md.Subtotal.StringFixed(2))
	params.AddMetadata(metaKeyDeliveryFee, md.DeliveryFee.StringFixed(2))
	params.AddMetadata(metaKeyTax, md.Tax.StringFixed(2))
	params.AddMetadata(metaKeyTotal, md.Total.StringFixed(2))

	sess, err := g.sc.CheckoutSessions.New(params)
	if err != nil {
		g.logger.Error().Err(err).Msg("failed to create checkout session")
		return CheckoutSession{}, err
	}

	g.logger.Info().
		Str("session_id", sess.ID).
		Int("items", md.ItemCount).
		Str("total", md.Total.StringFixed(2)).
		Msg("checkout session created")

	return CheckoutSession{URL: sess.URL, SessionID: sess.ID}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (SessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.sc.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		g.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to retrieve checkout session")
		return SessionStatus{}, err
	}

	return SessionStatus{
		ID:            sess.ID,
		PaymentStatus: string(sess.PaymentStatus),
		Metadata:      sess.Metadata,
	}, nil
}

// 皿ごとに1明細＋配送料と税の合成明細。単価はマイナー通貨単位（セント）
func buildLineItems(data CheckoutData) []*stripe.CheckoutSessionLineItemParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(data.Items)+2)

	for _, it := range data.Items {
		pd := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:     stripe.String(it.Name),
			Metadata: map[string]string{"dishId": it.DishID},
		}
		if it.Description != "" {
			pd.Description = stripe.String(it.Description)
		}
		if it.ImageURL != "" {
			pd.Images = stripe.StringSlice([]string{it.ImageURL})
		}

		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(string(stripe.CurrencyUSD)),
				ProductData: pd,
				UnitAmount:  stripe.Int64(minorUnits(it.UnitPrice)),
			},
			Quantity: stripe.Int64(it.Quantity),
		})
	}

	items = append(items, syntheticLineItem("Delivery Fee", "Standard delivery to your address", "delivery-fee", data.DeliveryFee))
	items = append(items, syntheticLineItem("Tax (5%)", "Sales tax on order", "tax", data.Tax))

	return items
}

func syntheticLineItem(name string, description string, dishID string, amount decimal.Decimal) *stripe.CheckoutSessionLineItemParams {
	return &stripe.CheckoutSessionLineItemParams{
		PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(string(stripe.CurrencyUSD)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String(name),
				Description: stripe.String(description),
				Metadata:    map[string]string{"dishId": dishID},
			},
			UnitAmount: stripe.Int64(minorUnits(amount)),
		},
		Quantity: stripe.Int64(1),
	}
}

// 10.00 → 1000。明細単位で丸める
func minorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
