// Package ruwler is a Go client for the Ruwler marketing platform REST API.
//
// Every resource (projects, campaigns, channels, templates, tokens,
// contacts, transactional mail...) is reached through one request pipeline
// provided by the httpclient package: the request is built with the
// configured format and credential, executed over a reused transport
// handle, and the answer is either a *httpclient.Response carrying the
// decoded JSON body or a typed *errors.Error.
//
//	client, err := ruwler.New(os.Getenv("RUWLER_API_KEY"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	resp, err := client.Campaigns.List(ctx, ruwler.PageFilters(1, 10))
//	if errors.IsUnauthorized(err) {
//	    // rotate the key
//	}
//	for _, c := range resp.Data.Members() {
//	    fmt.Println(c.Get("name"))
//	}
//
// A Client serializes its calls; share one per credential.
package ruwler
