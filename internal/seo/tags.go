// SPDX-License-Identifier: MIT

package seo

// MetaTags renders the HTML head tags of an entry: title, description,
// canonical link, OpenGraph and Twitter card. baseURL makes the canonical
// URL absolute; image is optional.
func MetaTags(e Entry, baseURL, image string) map[string]string {
	u := JoinURL(baseURL, e.URL)
	tags := map[string]string{
		"title":               e.Title,
		"description":         e.Description,
		"canonical":           u,
		"og:title":            e.Title,
		"og:description":      e.Description,
		"og:url":              u,
		"og:type":             "website",
		"og:locale":           e.Lang,
		"twitter:card":        "summary_large_image",
		"twitter:title":       e.Title,
		"twitter:description": e.Description,
	}
	if image != "" {
		tags["og:image"] = image
		tags["twitter:image"] = image
	}
	return tags
}
