package calculator

import (
	"github.com/shopspring/decimal"

	"TradeTape/internal/model"
)

// Classify applies a simplified tick test. A print at the ask is a buy, a
// print at the bid is a sell, anything else (inside the spread, or with the
// quote missing) is unknown. In a locked market where bid == ask the ask is
// checked first, so the trade is a buy.
func Classify(price decimal.Decimal, bid, ask decimal.NullDecimal) model.Sentiment {
	if ask.Valid && price.Equal(ask.Decimal) {
		return model.SentimentBuy
	}
	if bid.Valid && price.Equal(bid.Decimal) {
		return model.SentimentSell
	}
	return model.SentimentUnknown
}

// ClassifyTrade classifies a single observation.
func ClassifyTrade(o *model.TradeObservation) model.Sentiment {
	return Classify(o.Price, o.Bid, o.Ask)
}
