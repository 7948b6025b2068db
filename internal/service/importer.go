package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/careerbuddy/bot/internal/domain"
)

// JobImporter scrapes a job posting URL into a draft application. Company and
// role are best-effort guesses from OpenGraph metadata and the page title.
type JobImporter struct {
	jobs       *JobService
	httpClient *http.Client
}

func NewJobImporter(jobs *JobService) *JobImporter {
	return &JobImporter{
		jobs: jobs,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (im *JobImporter) ImportFromURL(ctx context.Context, userID int64, rawURL string) (*domain.Job, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; CareerBuddy/1.0)")

	resp, err := im.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("posting returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse posting: %w", err)
	}

	company, role := extractPosting(doc)
	if role == "" {
		return nil, fmt.Errorf("could not find a job title on that page")
	}
	if company == "" {
		company = "Unknown"
	}

	return im.jobs.Add(ctx, userID, company, role, "", rawURL, nil)
}

func extractPosting(doc *goquery.Document) (company, role string) {
	if v, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		company = strings.TrimSpace(v)
	}
	if v, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		role = strings.TrimSpace(v)
	}
	if role == "" {
		role = strings.TrimSpace(doc.Find("title").First().Text())
	}

	// Job boards commonly title pages "Role - Company" or "Role at Company".
	for _, sep := range []string{" at ", " - ", " | ", " – "} {
		if i := strings.Index(role, sep); i > 0 {
			if company == "" {
				company = strings.TrimSpace(role[i+len(sep):])
			}
			role = strings.TrimSpace(role[:i])
			break
		}
	}
	return company, role
}
