// Package sentiment defines the text-sentiment provider interface, the
// coarse sentiment and satisfaction labels, and the deterministic
// satisfaction-classification rule used by the local analysis pipeline.
//
// # Backends
//
//   - sentiment/bertstars: multilingual BERT star-rating sidecar
//
// # Classification
//
//	res, _ := p.Analyze(ctx, sentiment.Request{Text: text})
//	verdict := sentiment.ClassifySatisfaction(res.Sentiment, res.Score)
package sentiment
