package utils

import (
	"net/url"
	"strings"
)

// DeriveDomain extracts the registrable domain from a website address, e.g.
// "example.co.uk" from "https://www.example.co.uk/login". This is a label
// counting heuristic, not a public suffix list lookup: with three labels a
// second-to-last label of up to three characters is assumed to be a two-part
// suffix (co.uk, com.au), and four labels always keep the last three. Existing
// rows were derived with exactly these rules, so they must not change even
// though they misclassify some multi-part suffixes.
func DeriveDomain(address string) string {
	if !strings.HasPrefix(address, "http") {
		address = "http://" + address
	}

	u, err := url.Parse(address)
	if err != nil {
		return ""
	}

	host := u.Hostname()
	labels := strings.Split(host, ".")
	n := len(labels)
	if n < 2 {
		return host
	}

	if n == 4 || (n == 3 && len(labels[n-2]) <= 3) {
		return strings.Join(labels[n-3:], ".")
	}
	return strings.Join(labels[n-2:], ".")
}
