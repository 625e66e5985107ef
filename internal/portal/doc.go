// Package portal talks to the vendor's open-source release portal.
//
// The portal exposes no API; everything goes through the same HTML pages a
// browser would use. Obtaining an archive is a fixed three-step protocol:
// search for a device model, fetch the download modal for the chosen release
// to collect its short-lived form tokens, then POST those tokens to the
// download endpoint. The Client carries one cookie-bearing HTTP session
// across all three steps because the tokens are only valid within it.
//
// Extraction is deliberately narrow: each page shape the portal serves is
// parsed by a small function that returns a typed error as soon as the
// expected structure is missing. There is no fallback parsing; when the
// portal changes its markup these functions are the only place to fix.
package portal
