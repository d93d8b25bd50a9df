package corpus

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// maxLineBytes bounds a single JSONL record. Corpus texts are web-crawled
// paragraphs, well under this.
const maxLineBytes = 4 << 20

// FileProvider streams records from a local corpus file. Supported layouts
// are JSON lines ({"text": ..., "tag": ...} per line) and CSV with a header
// row containing text and tag columns. A trailing .gz or .zst extension is
// decompressed transparently.
type FileProvider struct {
	Path string
}

func (p *FileProvider) Stream(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		f, err := os.Open(p.Path)
		if err != nil {
			yield(Record{}, fmt.Errorf("corpus: open %s: %w", p.Path, err))
			return
		}
		defer f.Close() //nolint:errcheck

		name := p.Path
		var r io.Reader = f
		switch {
		case strings.HasSuffix(name, ".gz"):
			gz, err := gzip.NewReader(f)
			if err != nil {
				yield(Record{}, fmt.Errorf("corpus: gzip %s: %w", p.Path, err))
				return
			}
			defer gz.Close() //nolint:errcheck
			r = gz
			name = strings.TrimSuffix(name, ".gz")
		case strings.HasSuffix(name, ".zst"):
			zr, err := zstd.NewReader(f)
			if err != nil {
				yield(Record{}, fmt.Errorf("corpus: zstd %s: %w", p.Path, err))
				return
			}
			defer zr.Close()
			r = zr
			name = strings.TrimSuffix(name, ".zst")
		}

		if strings.HasSuffix(name, ".csv") {
			p.streamCSV(ctx, r, yield)
			return
		}
		p.streamJSONL(ctx, r, yield)
	}
}

func (p *FileProvider) streamJSONL(ctx context.Context, r io.Reader, yield func(Record, error) bool) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			yield(Record{}, err)
			return
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			yield(Record{}, fmt.Errorf("corpus: %s line %d: %w", p.Path, line, err))
			return
		}
		if !yield(rec, nil) {
			return
		}
	}
	if err := sc.Err(); err != nil {
		yield(Record{}, fmt.Errorf("corpus: read %s: %w", p.Path, err))
	}
}

func (p *FileProvider) streamCSV(ctx context.Context, r io.Reader, yield func(Record, error) bool) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		yield(Record{}, fmt.Errorf("corpus: %s has no header row: %w", p.Path, err))
		return
	}
	textCol, tagCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "text":
			textCol = i
		case "tag":
			tagCol = i
		}
	}
	if textCol < 0 || tagCol < 0 {
		yield(Record{}, fmt.Errorf("corpus: %s: header must contain text and tag columns, got %v", p.Path, header))
		return
	}

	line := 1
	for {
		line++
		if err := ctx.Err(); err != nil {
			yield(Record{}, err)
			return
		}
		row, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			yield(Record{}, fmt.Errorf("corpus: %s line %d: %w", p.Path, line, err))
			return
		}
		if len(row) <= textCol || len(row) <= tagCol {
			yield(Record{}, fmt.Errorf("corpus: %s line %d: expected at least %d columns, got %d", p.Path, line, max(textCol, tagCol)+1, len(row)))
			return
		}
		if !yield(Record{Text: row[textCol], Tag: row[tagCol]}, nil) {
			return
		}
	}
}
