package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sternrassler/pokedex-catalog/pkg/logging"
	"golang.org/x/sync/errgroup"
)

// ErrNoCategories is returned by FilterByCategories when no category is
// selected. Callers fetch the unfiltered listing instead.
var ErrNoCategories = errors.New("no categories selected")

// MembershipFetcher returns every item that carries a category.
type MembershipFetcher interface {
	Members(ctx context.Context, category string) ([]ItemStub, error)
}

// Intersect returns the items present, by name, in every list.
//
// The result keeps the order of the first list. Duplicate names are
// reported once.
func Intersect(lists ...[]ItemStub) []ItemStub {
	if len(lists) == 0 {
		return nil
	}

	rest := make([]map[string]struct{}, 0, len(lists)-1)
	for _, list := range lists[1:] {
		names := make(map[string]struct{}, len(list))
		for _, item := range list {
			names[item.Name] = struct{}{}
		}
		rest = append(rest, names)
	}

	seen := make(map[string]struct{}, len(lists[0]))
	out := make([]ItemStub, 0, len(lists[0]))
	for _, item := range lists[0] {
		if _, dup := seen[item.Name]; dup {
			continue
		}
		seen[item.Name] = struct{}{}

		inAll := true
		for _, names := range rest {
			if _, ok := names[item.Name]; !ok {
				inAll = false
				break
			}
		}
		if inAll {
			out = append(out, item)
		}
	}
	return out
}

// FilterByCategories fetches the membership list of every category
// concurrently and returns their intersection. The result does not depend
// on the order in which the fetches complete.
func FilterByCategories(ctx context.Context, fetcher MembershipFetcher, categories []string) ([]ItemStub, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	lists := make([][]ItemStub, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range categories {
		g.Go(func() error {
			members, err := fetcher.Members(gctx, name)
			if err != nil {
				return fmt.Errorf("fetch members of %q: %w", name, err)
			}
			lists[i] = members
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := Intersect(lists...)

	logger := logging.NewLogger(logging.ComponentFilter)
	logger.Debug().
		Strs("categories", categories).
		Int("matches", len(result)).
		Msg("Category intersection computed")

	return result, nil
}
