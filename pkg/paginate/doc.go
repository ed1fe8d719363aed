// Package paginate drives a page/limit/meta fetch cycle for list views.
//
// A Resource wraps a Fetcher and keeps the current page, limit, the last
// page of data with its meta, a loading flag and the last error. Every
// parameter change issues a new fetch tagged with a sequence number; when a
// fetch completes its result is applied only if no newer fetch has been issued
// since, so a slow response for an old page can never overwrite a newer one.
// Stale responses are discarded, not cancelled.
//
//	res := paginate.New(client.Products.Fetcher(), paginate.Options{})
//	res.Start(ctx)
//	res.SetPage(2)
//	res.Wait()
//	state := res.Snapshot()
package paginate
