package portal

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DownloadPurpose is the fixed purpose field the portal expects on every
// download form submission.
const DownloadPurpose = "AOP"

// Column positions inside a search result row.
const (
	modelColumn    = 1
	versionColumn  = 2
	downloadColumn = 5
)

// searchTableSelector matches the results table on the search page.
const searchTableSelector = "table.tbl-downList"

// ReleaseCandidate is one row of the portal's search results. JSON field
// names mirror the portal's own form vocabulary.
type ReleaseCandidate struct {
	UploadID        string `json:"uploadId"`
	DownloadPurpose string `json:"downloadPurpose"`
	SourceVersion   string `json:"sourceVersion"`
	SourceModel     string `json:"sourceModel"`
}

// FindByVersion returns the first candidate whose SourceVersion exactly
// matches version.
func FindByVersion(candidates []ReleaseCandidate, version string) (ReleaseCandidate, bool) {
	for _, candidate := range candidates {
		if candidate.SourceVersion == version {
			return candidate, true
		}
	}
	return ReleaseCandidate{}, false
}

// parseSearchResults extracts release candidates from the search results
// page, preserving page order.
func parseSearchResults(r io.Reader) ([]ReleaseCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	table := doc.Find(searchTableSelector).First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("search page: no %s table", searchTableSelector)
	}

	var candidates []ReleaseCandidate
	var rowErr error
	table.Find("tr").EachWithBreak(func(i int, row *goquery.Selection) bool {
		cells := row.Find("td")
		if cells.Length() == 0 {
			// Header row.
			return true
		}
		candidate, err := parseSearchRow(cells)
		if err != nil {
			rowErr = fmt.Errorf("search page: row %d: %w", i, err)
			return false
		}
		candidates = append(candidates, candidate)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return candidates, nil
}

func parseSearchRow(cells *goquery.Selection) (ReleaseCandidate, error) {
	if cells.Length() <= downloadColumn {
		return ReleaseCandidate{}, fmt.Errorf("expected at least %d columns, found %d", downloadColumn+1, cells.Length())
	}

	model := strings.TrimSpace(cells.Eq(modelColumn).Text())
	version := strings.TrimSpace(cells.Eq(versionColumn).Text())
	if version == "" {
		return ReleaseCandidate{}, errors.New("empty source version")
	}

	uploadID, err := uploadIDFromCell(cells.Eq(downloadColumn))
	if err != nil {
		return ReleaseCandidate{}, err
	}

	return ReleaseCandidate{
		UploadID:        uploadID,
		DownloadPurpose: DownloadPurpose,
		SourceVersion:   version,
		SourceModel:     model,
	}, nil
}

// uploadIDFromCell pulls the upload identifier out of the download anchor.
// The portal embeds it as the first single-quoted argument of a javascript
// href, so the second quote-delimited field is the identifier.
func uploadIDFromCell(cell *goquery.Selection) (string, error) {
	href, ok := cell.Find("a").First().Attr("href")
	if !ok {
		return "", errors.New("download cell has no anchor href")
	}
	parts := strings.Split(href, "'")
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("no upload id in href %q", href)
	}
	return parts[1], nil
}
