// Package bitly provides a client for the bitly v3 REST API.
//
// Every call is a single HTTP GET to
//
//	{scheme}://{apiUrl}/{apiVersion}/{method}?access_token=...&...
//
// whose JSON body has the shape {status_code, status_txt, data}. A status
// code in [200, 400) yields the decoded *Response with Data passed through
// untouched; anything else yields an *APIError carrying the status code and
// any partial data. Failures below HTTP (DNS, refused connections, timeouts,
// cancelled contexts) yield a *TransportError wrapping the net/http error.
//
// Basic Usage:
//
//	client, err := bitly.New(os.Getenv("BITLY_ACCESS_TOKEN"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := client.Shorten(ctx, "https://github.com/wesleyorama2/bitly")
//	if err != nil {
//	    var apiErr *bitly.APIError
//	    if errors.As(err, &apiErr) {
//	        log.Fatalf("bitly said %d: %s", apiErr.StatusCode, apiErr.StatusTxt)
//	    }
//	    log.Fatal(err)
//	}
//
//	fmt.Println(resp.Get("url").String())
//
// Short URLs and hashes can be mixed freely in the list-based methods
// (Expand, Clicks, Info, ...). Items containing "://" are sent as shortUrl,
// everything else as hash; see NormalizeItems.
//
// Methods without a dedicated wrapper are reachable through Request:
//
//	resp, err := client.Request(ctx, "user/link_history", url.Values{"limit": {"5"}})
//
// Thread Safety:
//
// A Client is immutable after New and safe for concurrent use. Deadlines and
// cancellation are taken from the context passed to each call.
package bitly
