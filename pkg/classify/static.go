package classify

import (
	"context"
	"strings"

	"github.com/sentinote/sentinote/pkg/models"
)

// Static is an offline classifier backed by a small fixed lexicon. It
// exists for local development and tests, where calling a cloud service is
// neither possible nor desirable; it makes no claim to accuracy.
type Static struct{}

var _ Classifier = Static{}

var (
	positiveWords = map[string]struct{}{
		"good": {}, "great": {}, "love": {}, "happy": {}, "excellent": {},
		"nice": {}, "wonderful": {}, "best": {}, "thanks": {}, "awesome": {},
	}
	negativeWords = map[string]struct{}{
		"bad": {}, "terrible": {}, "hate": {}, "sad": {}, "awful": {},
		"worst": {}, "angry": {}, "broken": {}, "never": {}, "fail": {},
	}
)

func (Static) Classify(_ context.Context, text string) (models.Sentiment, error) {
	var pos, neg int
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if _, ok := positiveWords[word]; ok {
			pos++
		}
		if _, ok := negativeWords[word]; ok {
			neg++
		}
	}
	switch {
	case pos > 0 && neg > 0:
		return models.SentimentMixed, nil
	case pos > 0:
		return models.SentimentPositive, nil
	case neg > 0:
		return models.SentimentNegative, nil
	default:
		return models.SentimentNeutral, nil
	}
}
