package portal

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/PuerkitoBio/goquery"
)

// DownloadAuthorization is a ReleaseCandidate completed with the short-lived
// form tokens from its download modal. It is valid only within the session
// that fetched it and is consumed immediately by the download POST.
type DownloadAuthorization struct {
	ReleaseCandidate
	AttachIDs     string
	CSRFToken     string
	DownloadToken []byte
}

// formValues renders the authorization as the urlencoded form the download
// endpoint expects.
func (a DownloadAuthorization) formValues() url.Values {
	values := url.Values{}
	values.Set("uploadId", a.UploadID)
	values.Set("downloadPurpose", a.DownloadPurpose)
	values.Set("sourceVersion", a.SourceVersion)
	values.Set("sourceModel", a.SourceModel)
	values.Set("attachIds", a.AttachIDs)
	values.Set("_csrf", a.CSRFToken)
	values.Set("token", string(a.DownloadToken))
	return values
}

type modalTokens struct {
	attachIDs     string
	csrfToken     string
	downloadToken []byte
}

// parseModalTokens extracts the three authorization values from the download
// modal page: the second checkbox's id (the attachment selection), the _csrf
// form field, and the token field.
func parseModalTokens(r io.Reader) (modalTokens, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return modalTokens{}, fmt.Errorf("parse modal page: %w", err)
	}

	checkboxes := doc.Find("input[type=checkbox]")
	if checkboxes.Length() < 2 {
		return modalTokens{}, fmt.Errorf("modal page: expected at least 2 checkboxes, found %d", checkboxes.Length())
	}
	attachIDs, ok := checkboxes.Eq(1).Attr("id")
	if !ok || attachIDs == "" {
		return modalTokens{}, errors.New("modal page: attachment checkbox has no id")
	}

	csrf, ok := doc.Find("[name=_csrf]").First().Attr("value")
	if !ok || csrf == "" {
		return modalTokens{}, errors.New("modal page: no _csrf field value")
	}

	token, ok := doc.Find("#token").First().Attr("value")
	if !ok || token == "" {
		return modalTokens{}, errors.New("modal page: no token field value")
	}

	return modalTokens{
		attachIDs:     attachIDs,
		csrfToken:     csrf,
		downloadToken: []byte(token),
	}, nil
}
