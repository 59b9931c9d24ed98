package contentgen

// Config bounds the generation requests.
type Config struct {
	// MaxQuestions caps the quiz pool. Extra items are dropped.
	MaxQuestions int

	// MaxInputChars truncates source text before it is sent.
	MaxInputChars int

	SummaryMaxTokens    int
	QuizMaxTokens       int
	FlashcardsMaxTokens int

	Temperature float64
}

func DefaultConfig() Config {
	return Config{
		MaxQuestions:        10,
		MaxInputChars:       60_000,
		SummaryMaxTokens:    4096,
		QuizMaxTokens:       6144,
		FlashcardsMaxTokens: 3072,
		Temperature:         0.4,
	}
}
