// Package pagination provides page-number math for listings and batched
// resolution of the item details shown on one page.
//
// A listing page holds at most catalog.PageSize items. Markers builds the
// page-number strip shown under a listing:
//
//	pagination.Markers(5, 10) // 1 2 3 4 5 6 7 ... 10
//
// Item details (image, tags) come from one upstream request per item. The
// BatchFetcher issues them in rounds of Config.BatchSize concurrent
// requests, waiting for each round before starting the next, and reports
// every finished round so the caller can merge it at the original indices:
//
//	fetcher := pagination.NewBatchFetcher(apiClient, pagination.DefaultConfig())
//	details := fetcher.FetchDetails(ctx, page.Items, func(b pagination.Batch) {
//		copy(view[b.Offset:], b.Details)
//	})
//
// The batch fetcher:
//   - Caps in-flight requests at BatchSize (default 5)
//   - Preserves input order at every intermediate stage
//   - Degrades a failed item to its stub and logs the error
//   - Stops starting new rounds once the context is cancelled
package pagination
