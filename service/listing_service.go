package service

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"propcalc/domain"
	"propcalc/observability"
)

// fieldKeywords maps each listing field to the words that identify it in
// class/id attributes, in match priority order.
var fieldKeywords = []struct {
	field    string
	keywords []string
}{
	{domain.FieldMonthlyRent, []string{"rent", "rental"}},
	{domain.FieldPropertyTaxAnnual, []string{"tax", "taxes"}},
	{domain.FieldHOAMonthly, []string{"hoa", "strata", "condo"}},
	{domain.FieldPurchasePrice, []string{"price", "asking", "listprice"}},
}

// Visible-text patterns for low-confidence hits. A "$" is required so a
// bare year or square footage near a keyword is not picked up.
var textPatterns = []struct {
	field string
	re    *regexp.Regexp
}{
	{domain.FieldMonthlyRent, regexp.MustCompile(`(?i)\brent(?:al)?\b[^$]{0,40}(\$\s*\d[\d,]*(?:\.\d+)?(?:[km]\b)?)`)},
	{domain.FieldPropertyTaxAnnual, regexp.MustCompile(`(?i)\btax(?:es)?\b[^$]{0,40}(\$\s*\d[\d,]*(?:\.\d+)?(?:[km]\b)?)`)},
	{domain.FieldHOAMonthly, regexp.MustCompile(`(?i)\b(?:hoa|strata|condo fees?)\b[^$]{0,40}(\$\s*\d[\d,]*(?:\.\d+)?(?:[km]\b)?)`)},
	{domain.FieldPurchasePrice, regexp.MustCompile(`(?i)\b(?:price|asking|listed at)\b[^$]{0,40}(\$\s*\d[\d,]*(?:\.\d+)?(?:[km]\b)?)`)},
}

var amountPattern = regexp.MustCompile(`(?i)\$?\s*(\d[\d,]*(?:\.\d+)?)(?:\s*([km])\b)?`)

var highConfidenceMeta = map[string]bool{
	"og:price:amount":      true,
	"product:price:amount": true,
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// ListingExtractor pulls candidate-property figures out of listing markup.
// It never fetches anything; callers hand it the document.
type ListingExtractor struct {
	metrics *observability.Metrics
	logger  *zap.Logger
}

func NewListingExtractor(metrics *observability.Metrics, logger *zap.Logger) *ListingExtractor {
	return &ListingExtractor{metrics: metrics, logger: logger}
}

// pending is an element whose class/id named a field; the next amount in
// its text is attributed to that field.
type pending struct {
	field      string
	confidence domain.Confidence
	source     string
	depth      int
}

type extraction struct {
	fields map[string]domain.ExtractedField
}

// offer keeps the stronger of an existing hit and f. On a tie the first
// hit stays.
func (e *extraction) offer(field string, f domain.ExtractedField) {
	if cur, ok := e.fields[field]; ok && cur.Confidence.Rank() >= f.Confidence.Rank() {
		return
	}
	e.fields[field] = f
}

// Extract reads at most MaxListingBytes of markup from r.
func (x *ListingExtractor) Extract(ctx context.Context, r io.Reader) (domain.ListingExtraction, error) {
	_, span := tracer.Start(ctx, "ListingExtractor.Extract")
	defer span.End()

	data, err := io.ReadAll(io.LimitReader(r, MaxListingBytes+1))
	if err != nil {
		return domain.ListingExtraction{}, err
	}
	if len(data) > MaxListingBytes {
		return domain.ListingExtraction{}, &domain.ErrValidation{Field: "body", Message: "listing markup exceeds 2 MiB"}
	}

	out := extractFields(data)

	for _, f := range out.Fields {
		x.metrics.IncrListingField(string(f.Confidence))
	}
	span.SetAttributes(attribute.Int("listing.fields", len(out.Fields)))
	x.logger.Debug("listing extracted", zap.Int("fields", len(out.Fields)), zap.Int("bytes", len(data)))
	return out, nil
}

func extractFields(data []byte) domain.ListingExtraction {
	ex := &extraction{fields: make(map[string]domain.ExtractedField)}

	var (
		text    strings.Builder
		stack   []pending
		depth   int
		skipped int // inside <script> or <style>
	)

	z := html.NewTokenizer(bytes.NewReader(data))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF or malformed input; either way, use what was read.
			lowConfidence(ex, text.String())
			return domain.ListingExtraction{Fields: ex.fields}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data == "script" || tok.Data == "style" {
				if tt == html.StartTagToken {
					skipped++
				}
				continue
			}
			attrs := attrMap(tok.Attr)
			if tok.Data == "meta" {
				metaHit(ex, attrs)
				continue
			}
			selfClosing := tt == html.SelfClosingTagToken || voidElements[tok.Data]
			if !selfClosing {
				depth++
			}
			if p, ok := markupHit(ex, attrs); ok && !selfClosing {
				p.depth = depth
				stack = append(stack, p)
			}
			// Block boundaries separate text runs.
			text.WriteByte(' ')

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if skipped > 0 {
					skipped--
				}
				continue
			}
			if voidElements[tag] {
				continue
			}
			for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
				stack = stack[:len(stack)-1]
			}
			if depth > 0 {
				depth--
			}
			text.WriteByte(' ')

		case html.TextToken:
			if skipped > 0 {
				continue
			}
			chunk := string(z.Text())
			text.WriteString(chunk)
			if len(stack) == 0 {
				continue
			}
			p := stack[len(stack)-1]
			if v, ok := parseAmount(chunk); ok {
				ex.offer(p.field, domain.ExtractedField{Value: v, Confidence: p.confidence, Source: p.source})
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func attrMap(attrs []html.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[strings.ToLower(a.Key)] = a.Val
	}
	return m
}

func metaHit(ex *extraction, attrs map[string]string) {
	content, ok := attrs["content"]
	if !ok {
		return
	}
	for _, key := range []string{"property", "name"} {
		if name := strings.ToLower(attrs[key]); highConfidenceMeta[name] {
			if v, ok := parseAmount(content); ok {
				ex.offer(domain.FieldPurchasePrice, domain.ExtractedField{
					Value: v, Confidence: domain.ConfidenceHigh, Source: "meta[" + key + "=" + name + "]",
				})
			}
			return
		}
	}
	if strings.EqualFold(attrs["itemprop"], "price") {
		if v, ok := parseAmount(content); ok {
			ex.offer(domain.FieldPurchasePrice, domain.ExtractedField{
				Value: v, Confidence: domain.ConfidenceHigh, Source: "itemprop=price",
			})
		}
	}
}

// markupHit handles itemprop and class/id keywords on a non-meta element.
// An itemprop with a content attribute is resolved immediately; otherwise
// the element's text is awaited.
func markupHit(ex *extraction, attrs map[string]string) (pending, bool) {
	if strings.EqualFold(attrs["itemprop"], "price") {
		if content, ok := attrs["content"]; ok {
			if v, ok := parseAmount(content); ok {
				ex.offer(domain.FieldPurchasePrice, domain.ExtractedField{
					Value: v, Confidence: domain.ConfidenceHigh, Source: "itemprop=price",
				})
				return pending{}, false
			}
		}
		return pending{field: domain.FieldPurchasePrice, confidence: domain.ConfidenceHigh, source: "itemprop=price"}, true
	}

	for _, key := range []string{"id", "class"} {
		words := splitWords(attrs[key])
		for _, fk := range fieldKeywords {
			for _, kw := range fk.keywords {
				if containsWord(words, kw) {
					return pending{field: fk.field, confidence: domain.ConfidenceMedium, source: key + "=" + kw}, true
				}
			}
		}
	}
	return pending{}, false
}

func lowConfidence(ex *extraction, text string) {
	for _, tp := range textPatterns {
		m := tp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseAmount(m[1]); ok {
			ex.offer(tp.field, domain.ExtractedField{Value: v, Confidence: domain.ConfidenceLow, Source: "text"})
		}
	}
}

// splitWords breaks "listing-price__value" into [listing price value].
func splitWords(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
}

func containsWord(words []string, w string) bool {
	for _, candidate := range words {
		if candidate == w {
			return true
		}
	}
	return false
}

// parseAmount reads the first amount in s, honouring thousands separators
// and k/M suffixes ("$1.2M", "850k", "2,150.50").
func parseAmount(s string) (float64, bool) {
	m := amountPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "k":
		v *= 1_000
	case "m":
		v *= 1_000_000
	}
	return v, true
}
