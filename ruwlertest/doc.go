// Package ruwlertest provides a programmable fake of the Ruwler API for
// tests.
//
//	srv := ruwlertest.Start(t)
//	srv.JSON(http.MethodGet, "/campaigns", http.StatusOK, map[string]any{
//	    "hydra:member": []any{},
//	})
//
//	scheme, host, port := srv.Endpoint()
//
// Unprogrammed routes answer 404 with a JSON description. Every request
// is recorded and can be inspected with Requests or LastRequest.
package ruwlertest
