package model

// Sentiment indicates which side of the market initiated a trade.
type Sentiment string

const (
	SentimentBuy     Sentiment = "BUY"
	SentimentSell    Sentiment = "SELL"
	SentimentUnknown Sentiment = "UNKNOWN"
)
