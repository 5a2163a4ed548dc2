// Package iconik provides a client for the iconik media asset management API.
//
// The client wraps every iconik resource group (assets, collections, files,
// metadata, search, jobs, transcode, ACLs, auth, users, settings,
// notifications, stats, automations) behind a single authenticated HTTP
// session with retry, backoff and automatic pagination.
//
// # Usage
//
//	client, err := iconik.New(appID, authToken)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Assets().Get(ctx, assetID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.Raw.OK() {
//	    fmt.Println(res.Data.Title)
//	}
//
// # Result envelope
//
// Every operation returns its raw HTTP response alongside the decoded,
// validated payload. Non-2xx responses are not errors: the envelope carries
// a nil Data and the caller branches on res.Raw.StatusCode. A non-nil error
// means the request could not complete (network failure after retries,
// context cancellation) or the server returned a 2xx body that failed to
// decode or validate (wrapped ErrInvalidResponse). This policy is uniform
// across all resource methods.
//
// # Retries
//
// Transient network errors and 5xx responses are retried with exponential
// backoff for every verb, including POST, PUT, PATCH and DELETE. iconik
// operations are either idempotent or tolerate duplicates, so the client
// deliberately does not distinguish verbs when retrying.
//
// # Pagination
//
// List methods named *All collect every page into one virtual page. When a
// traversal crosses the search backend's result window (10,000 by default)
// the engine continues by filtering on date_created instead of page number;
// this requires the listed objects to carry date_created and the server to
// return them in date-sortable order.
package iconik
