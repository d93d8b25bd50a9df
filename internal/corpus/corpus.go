// Package corpus streams labeled text records from a benchmark corpus.
package corpus

import (
	"context"
	"iter"
)

// Record is one corpus sample: raw text plus its fine-grained language tag.
type Record struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Provider produces a lazy, finite, non-restartable stream of records.
// Any transport or format error ends the stream and is yielded to the
// consumer; providers do not retry.
type Provider interface {
	Stream(ctx context.Context) iter.Seq2[Record, error]
}

// CollectProgressEvery is how many loaded rows pass between progress callbacks.
const CollectProgressEvery = 50000

// Collect materializes up to limit records from the provider (limit <= 0
// means the entire stream). The progress callback, if non-nil, is invoked
// every CollectProgressEvery rows. The first stream error aborts collection.
func Collect(ctx context.Context, p Provider, limit int, progress func(loaded int)) ([]Record, error) {
	var rows []Record
	for rec, err := range p.Stream(ctx) {
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
		if progress != nil && len(rows)%CollectProgressEvery == 0 {
			progress(len(rows))
		}
		if limit > 0 && len(rows) >= limit {
			break
		}
	}
	return rows, nil
}
