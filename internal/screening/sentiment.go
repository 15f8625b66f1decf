package screening

// Small polarity lexicon for answer tone. Polarity is the signed share of
// lexicon hits among tokens, kept in [-1, 1] like the usual NLP convention.
var sentimentLexicon = map[string]float64{
	"good": 1, "great": 1, "excellent": 1, "love": 1, "enjoy": 1,
	"enjoyed": 1, "passionate": 1, "excited": 1, "exciting": 1,
	"success": 1, "successful": 1, "successfully": 1, "improved": 1,
	"improve": 1, "achieved": 1, "achievement": 1, "confident": 1,
	"strong": 1, "best": 1, "happy": 1, "proud": 1, "effective": 1,
	"efficient": 1, "positive": 1, "motivated": 1, "thrive": 1,
	"delivered": 1, "win": 1, "growth": 1, "learned": 1,

	"bad": -1, "poor": -1, "hate": -1, "hated": -1, "fail": -1,
	"failed": -1, "failure": -1, "difficult": -1, "struggle": -1,
	"struggled": -1, "problem": -1, "problems": -1, "worst": -1,
	"weak": -1, "stress": -1, "stressed": -1, "unhappy": -1,
	"frustrated": -1, "frustrating": -1, "negative": -1, "blame": -1,
	"conflict": -1, "mistake": -1, "mistakes": -1, "quit": -1,
}

// Polarity scores text tone in [-1, 1]. Text with no lexicon hits is 0.
func Polarity(text string) float64 {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	var hits int
	for _, tok := range tokens {
		if v, ok := sentimentLexicon[tok]; ok {
			sum += v
			hits++
		}
	}
	if hits == 0 {
		return 0
	}
	return sum / float64(hits)
}

// SentimentLabel buckets a polarity into positive, negative, or neutral.
func SentimentLabel(polarity float64) string {
	switch {
	case polarity > 0.1:
		return "positive"
	case polarity < -0.1:
		return "negative"
	}
	return "neutral"
}
