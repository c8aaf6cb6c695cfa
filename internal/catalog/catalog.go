// Package catalog loads the star catalog: an optionally gzip-compressed CSV
// with one row per star carrying its learned latent coordinates, true galactic
// coordinates, absolute magnitude and spectral type.
package catalog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chewxy/math32"
	"github.com/klauspost/compress/gzip"

	"latent-stars/internal/logger"
)

// ErrNoSource reports that every configured dataset source failed.
var ErrNoSource = errors.New("catalog: no dataset source could be loaded")

const (
	fetchTimeout     = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"
	fieldCount       = 9 // id,latent_x,latent_y,latent_z,x,y,z,absmag,spect
)

// Star is one immutable catalog entry.
type Star struct {
	ID       int
	Latent   [3]float32 // learned embedding coordinates
	Galactic [3]float32 // true spatial coordinates, parsecs
	AbsMag   float32
	Spect    string // spectral type, e.g. "G2"; may be empty
}

// Finite reports whether every coordinate and the magnitude are finite
// numbers. Rows that fail numeric parsing carry NaN fields instead.
func (s Star) Finite() bool {
	for i := 0; i < 3; i++ {
		if !finite(s.Latent[i]) || !finite(s.Galactic[i]) {
			return false
		}
	}
	return finite(s.AbsMag)
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// ParseTable reads the catalog table from r: a discarded header line followed
// by one comma-separated row per star. Numeric fields that fail to parse
// become NaN (id becomes 0) rather than rejecting the row; blank lines and
// trailing whitespace are tolerated. Only a read error fails the parse.
func ParseTable(r io.Reader) ([]Star, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var stars []Star
	header := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if header {
			header = false
			continue
		}
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		stars = append(stars, Star{
			ID:       parseID(field(fields, 0)),
			Latent:   [3]float32{parseFloat(field(fields, 1)), parseFloat(field(fields, 2)), parseFloat(field(fields, 3))},
			Galactic: [3]float32{parseFloat(field(fields, 4)), parseFloat(field(fields, 5)), parseFloat(field(fields, 6))},
			AbsMag:   parseFloat(field(fields, 7)),
			Spect:    strings.TrimSpace(field(fields, 8)),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("catalog: read table: %w", err)
	}
	return stars, nil
}

func field(fields []string, i int) string {
	if i >= len(fields) {
		return ""
	}
	return fields[i]
}

func parseID(s string) int {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return id
}

func parseFloat(s string) float32 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil {
		return math32.NaN()
	}
	return float32(f)
}

// Fetch tries each source in order until one yields a parsable catalog.
// A source is an http(s) URL or a local file path; the payload is sniffed for
// the gzip magic bytes and decompressed when present. Row-level corruption
// never fails a source, only transport, decode and read errors do. When every
// source fails the returned error wraps ErrNoSource.
func Fetch(ctx context.Context, sources []string, log *logger.Logger) ([]Star, error) {
	var errs []error
	for _, src := range sources {
		stars, err := fetchOne(ctx, src)
		if err != nil {
			log.WithSource(src).Warn("dataset source failed", "error", err)
			errs = append(errs, err)
			continue
		}
		bad := 0
		for _, s := range stars {
			if !s.Finite() {
				bad++
			}
		}
		log.WithSource(src).Info("catalog loaded", "stars", len(stars), "malformed", bad)
		return stars, nil
	}
	return nil, fmt.Errorf("%w: %w", ErrNoSource, errors.Join(errs...))
}

func fetchOne(ctx context.Context, src string) ([]Star, error) {
	body, err := open(ctx, src)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	br := bufio.NewReader(body)
	var r io.Reader = br
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("catalog: gunzip %s: %w", src, err)
		}
		defer gz.Close()
		r = gz
	}
	return ParseTable(r)
}

func open(ctx context.Context, src string) (io.ReadCloser, error) {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		client := &http.Client{Timeout: fetchTimeout}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		req.Header.Set("User-Agent", defaultUserAgent)
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("catalog: %s: HTTP %d", src, resp.StatusCode)
		}
		return resp.Body, nil
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return f, nil
}
