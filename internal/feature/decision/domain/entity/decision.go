package entity

// Verdict is the categorical outcome of a decision.
type Verdict string

const (
	VerdictSell Verdict = "SELL"
	VerdictWait Verdict = "WAIT"
)

// ScoreTriple holds the three normalized sub-scores, each in [0,1].
type ScoreTriple struct {
	Climate float64 `json:"climate"`
	Price   float64 `json:"price"`
	Market  float64 `json:"market"`
}

// Decision is the combined score (rounded to 3 decimals) and its verdict.
type Decision struct {
	Score   float64 `json:"score"`
	Verdict Verdict `json:"verdict"`
}

// Assessment bundles the sub-scores with the decision derived from them.
type Assessment struct {
	Scores   ScoreTriple `json:"scores"`
	Decision Decision    `json:"decision"`
}
