package youtube

import "context"

// fetchPage retrieves one page of results. It receives the cursor of the
// page to fetch ("" for the first page) and returns the page's items plus
// the cursor of the next page ("" when no pages remain).
type fetchPage[T any] func(ctx context.Context, pageToken string) (items []T, nextPageToken string, err error)

// collectPages follows a page-token cursor until the endpoint reports no
// further pages, concatenating every page's items in response order.
//
// Each request depends on the cursor from the previous response, so pages
// are fetched strictly one at a time. Exactly one call is issued per page.
// The first error aborts the whole fetch and no partial results are
// returned. Cancellation is honored between pages.
func collectPages[T any](ctx context.Context, fetch fetchPage[T]) ([]T, error) {
	var all []T
	pageToken := ""
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, next, err := fetch(ctx, pageToken)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if next == "" {
			return all, nil
		}
		pageToken = next
	}
}
