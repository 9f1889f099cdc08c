package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"propcalc/domain"
	"propcalc/observability"
)

func extract(t *testing.T, markup string) domain.ListingExtraction {
	t.Helper()
	x := NewListingExtractor(observability.NewMetrics(), zap.NewNop())
	out, err := x.Extract(context.Background(), strings.NewReader(markup))
	require.NoError(t, err)
	return out
}

func TestExtract_MetaPriceIsHighConfidence(t *testing.T) {
	out := extract(t, `<html><head>
		<meta property="og:price:amount" content="649000">
	</head><body><div class="price">$699,000</div></body></html>`)

	f := out.Fields[domain.FieldPurchasePrice]
	assert.Equal(t, 649000.0, f.Value)
	assert.Equal(t, domain.ConfidenceHigh, f.Confidence)
	assert.Equal(t, "meta[property=og:price:amount]", f.Source)
}

func TestExtract_ItempropWithoutContentReadsText(t *testing.T) {
	out := extract(t, `<span itemprop="price">$1.2M</span>`)

	f := out.Fields[domain.FieldPurchasePrice]
	assert.Equal(t, 1_200_000.0, f.Value)
	assert.Equal(t, domain.ConfidenceHigh, f.Confidence)
}

func TestExtract_ClassKeywordsAreMediumConfidence(t *testing.T) {
	out := extract(t, `<body>
		<div class="listing-price"><strong>$549,900</strong></div>
		<ul>
			<li id="est-rent">Estimated <b>2,450</b> / mo</li>
			<li class="annual-taxes">$4,800</li>
			<li class="hoa-fee">350</li>
		</ul>
	</body>`)

	require.Len(t, out.Fields, 4)
	assert.Equal(t, domain.ExtractedField{Value: 549900, Confidence: domain.ConfidenceMedium, Source: "class=price"}, out.Fields[domain.FieldPurchasePrice])
	assert.Equal(t, domain.ExtractedField{Value: 2450, Confidence: domain.ConfidenceMedium, Source: "id=rent"}, out.Fields[domain.FieldMonthlyRent])
	assert.Equal(t, 4800.0, out.Fields[domain.FieldPropertyTaxAnnual].Value)
	assert.Equal(t, 350.0, out.Fields[domain.FieldHOAMonthly].Value)
}

func TestExtract_VisibleTextIsLowConfidence(t *testing.T) {
	out := extract(t, `<p>Charming bungalow built in 1952. Asking $415,000. Current rent is $1,900 per month.</p>`)

	assert.Equal(t, domain.ExtractedField{Value: 415000, Confidence: domain.ConfidenceLow, Source: "text"}, out.Fields[domain.FieldPurchasePrice])
	assert.Equal(t, 1900.0, out.Fields[domain.FieldMonthlyRent].Value)
	assert.NotContains(t, out.Fields, domain.FieldPropertyTaxAnnual)
}

func TestExtract_TextNeedsCurrencySign(t *testing.T) {
	out := extract(t, `<p>Price reduced 2024, 3 beds.</p>`)
	assert.Empty(t, out.Fields)
}

func TestExtract_StrongerHitWinsRegardlessOfOrder(t *testing.T) {
	out := extract(t, `<body>
		<div class="price">$500,000</div>
		<meta itemprop="price" content="495000">
	</body>`)

	f := out.Fields[domain.FieldPurchasePrice]
	assert.Equal(t, 495000.0, f.Value)
	assert.Equal(t, domain.ConfidenceHigh, f.Confidence)
}

func TestExtract_IgnoresScripts(t *testing.T) {
	out := extract(t, `<script>var price = "$1";</script><style>.rent{}</style><p>nothing here</p>`)
	assert.Empty(t, out.Fields)
}

func TestExtract_KeywordElementWithoutAmountExpires(t *testing.T) {
	out := extract(t, `<div class="price">Contact agent</div><p>Built 1999</p>`)
	assert.Empty(t, out.Fields)
}

func TestExtract_RejectsOversizedMarkup(t *testing.T) {
	x := NewListingExtractor(observability.NewMetrics(), zap.NewNop())

	_, err := x.Extract(context.Background(), strings.NewReader(strings.Repeat("a", MaxListingBytes+1)))
	var verr *domain.ErrValidation
	require.True(t, errors.As(err, &verr))
}

func TestExtract_CountsFieldsByConfidence(t *testing.T) {
	m := observability.NewMetrics()
	x := NewListingExtractor(m, zap.NewNop())

	_, err := x.Extract(context.Background(), strings.NewReader(
		`<meta property="product:price:amount" content="300000"><div class="rent">$2,000</div>`))
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(m.Registry, "propcalc_listing_fields_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n) // high and medium series
}

func TestApply_OverwritesExtractedFieldsOnly(t *testing.T) {
	out := extract(t, `<div class="price">$420,000</div><div class="taxes">$6,000</div>`)
	base := domain.NewPropertyInputs{PurchasePrice: 1, MonthlyRent: 2100, Expenses: domain.ExpenseInputs{HOA: 75}}

	in := out.Apply(base)
	assert.Equal(t, 420000.0, in.PurchasePrice)
	assert.Equal(t, 2100.0, in.MonthlyRent)
	assert.Equal(t, 500.0, in.Expenses.PropertyTax)
	assert.Equal(t, 75.0, in.Expenses.HOA)
}
