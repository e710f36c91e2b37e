package classify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/comprehend"
	"github.com/aws/aws-sdk-go-v2/service/comprehend/types"

	"github.com/sentinote/sentinote/pkg/models"
)

// ComprehendAPI is the slice of the Comprehend client the classifier
// depends on.
type ComprehendAPI interface {
	DetectSentiment(ctx context.Context, in *comprehend.DetectSentimentInput, opts ...func(*comprehend.Options)) (*comprehend.DetectSentimentOutput, error)
}

// Comprehend classifies text with AWS Comprehend's DetectSentiment, whose
// label set is exactly the models.Sentiment domain.
type Comprehend struct {
	client   ComprehendAPI
	language types.LanguageCode
}

var _ Classifier = (*Comprehend)(nil)

// NewComprehend wraps an existing client.
func NewComprehend(client ComprehendAPI) *Comprehend {
	return &Comprehend{client: client, language: types.LanguageCodeEn}
}

// ConnectComprehend loads AWS configuration from the environment and
// returns a ready classifier.
func ConnectComprehend(ctx context.Context, region string) (*Comprehend, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("comprehend: load AWS config: %w", err)
	}
	return NewComprehend(comprehend.NewFromConfig(cfg)), nil
}

func (c *Comprehend) Classify(ctx context.Context, text string) (models.Sentiment, error) {
	out, err := c.client.DetectSentiment(ctx, &comprehend.DetectSentimentInput{
		LanguageCode: c.language,
		Text:         aws.String(text),
	})
	if err != nil {
		return "", fmt.Errorf("comprehend: detect sentiment: %w", err)
	}
	label := models.Sentiment(out.Sentiment)
	if !label.Valid() {
		return "", fmt.Errorf("comprehend: unexpected sentiment label %q", out.Sentiment)
	}
	return label, nil
}
