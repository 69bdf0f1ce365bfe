package bridge

import (
	"context"

	"github.com/amirasaad/onramp/pkg/observability"
)

type identified interface {
	itemID() string
}

type pageFetcher[T identified] func(ctx context.Context, startingAfter string) (*Page[T], error)

// listAll follows starting_after cursors one page at a time until the reported count
// is reached or a page comes back empty. Falling short of the count is reported but
// whatever was collected is still returned.
func listAll[T identified](
	ctx context.Context,
	fetch pageFetcher[T],
	reporter observability.Reporter,
	attrs ...any,
) ([]T, error) {
	var (
		items  []T
		cursor string
		pages  int
		count  int
	)
	for {
		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		pages++
		count = page.Count
		items = append(items, page.Data...)
		if len(page.Data) == 0 || len(items) >= count {
			break
		}
		cursor = page.Data[len(page.Data)-1].itemID()
	}

	if pages > 1 {
		observability.Warn(ctx, reporter, observability.EventPaginationMultiplePages,
			append(attrs, "pages", pages, "count", count)...,
		)
	}
	if len(items) < count {
		observability.Warn(ctx, reporter, observability.EventPaginationInconsistent,
			append(attrs, "collected", len(items), "count", count)...,
		)
	}
	return items, nil
}
