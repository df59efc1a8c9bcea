// Package httpclient is the transport core of the Ruwler SDK.
//
// A Builder turns a method, path, optional body and filters into an
// OutboundRequest carrying the absolute URL and the content, auth and
// correlation headers. A Client owns one reusable transport handle, runs
// each OutboundRequest through it and classifies the answer into a
// Response or a typed error from the errors package.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    APIKey: os.Getenv("RUWLER_API_KEY"),
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	resp, err := client.Send(ctx, http.MethodGet, "/campaigns", nil,
//	    httpclient.Filters{"page": 2})
//	if err != nil {
//	    return err
//	}
//	for _, campaign := range resp.Data.Members() {
//	    name, _ := campaign.Get("name").AsString()
//	    fmt.Println(name)
//	}
//
// Calls on one Client are serialized. Settings applied for one call never
// leak into the next because the handle is reset before every request.
package httpclient
