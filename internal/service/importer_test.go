package service

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractPostingOpenGraph(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
<meta property="og:site_name" content="Acme Careers">
<meta property="og:title" content="Backend Engineer">
<title>ignored</title>
</head></html>`)

	company, role := extractPosting(doc)
	assert.Equal(t, "Acme Careers", company)
	assert.Equal(t, "Backend Engineer", role)
}

func TestExtractPostingSplitsTitleSeparators(t *testing.T) {
	cases := []struct {
		title   string
		company string
		role    string
	}{
		{"Backend Engineer at Globex", "Globex", "Backend Engineer"},
		{"SRE - Initech", "Initech", "SRE"},
		{"Data Engineer | Hooli", "Hooli", "Data Engineer"},
	}

	for _, tc := range cases {
		doc := docFromHTML(t, "<html><head><title>"+tc.title+"</title></head></html>")
		company, role := extractPosting(doc)
		assert.Equal(t, tc.company, company, tc.title)
		assert.Equal(t, tc.role, role, tc.title)
	}
}

func TestExtractPostingKeepsSiteNameOverTitleSuffix(t *testing.T) {
	doc := docFromHTML(t, `<html><head>
<meta property="og:site_name" content="Acme">
<title>Backend Engineer - Careers Portal</title>
</head></html>`)

	company, role := extractPosting(doc)
	assert.Equal(t, "Acme", company)
	assert.Equal(t, "Backend Engineer", role)
}

func TestExtractPostingEmptyPage(t *testing.T) {
	doc := docFromHTML(t, "<html><head></head><body></body></html>")
	company, role := extractPosting(doc)
	assert.Empty(t, company)
	assert.Empty(t, role)
}
