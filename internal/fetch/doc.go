// Package fetch retrieves raw feed and page segments from the results
// site. It owns every network concern the parsers must not: the feed
// auth header, timeouts, retry with exponential backoff, and the URL
// scheme of the listing, archive, results and per-match feeds. Parsers
// receive the returned text as opaque input.
package fetch
