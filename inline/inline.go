// Package inline is the non-interactive, scriptable mode of the application.
package inline

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/bedtime-cli/bedtime/log"
	"github.com/bedtime-cli/bedtime/session"
	"github.com/bedtime-cli/bedtime/story"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	stories, err := fetch(ctx, options)
	if err != nil {
		return err
	}

	if picker, ok := options.Picker.Get(); ok {
		if choice := picker(stories); choice != nil {
			stories = []*story.Story{choice}
		} else {
			stories = []*story.Story{}
		}
	}

	page := story.Paginate(stories, options.Page, options.Limit)
	if options.Json {
		return writeJson(options.Out, page, options)
	}

	// a single picked story prints what a player needs
	if options.Picker.IsPresent() {
		for _, s := range page.Items {
			locator, err := session.Locator(s)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(options.Out, locator)
		}
		return nil
	}

	for _, s := range page.Items {
		_, _ = fmt.Fprintf(options.Out, "%s\t%s\n", s.Slug, s.Title)
	}

	if page.HasNext() {
		log.Infof("inline: page %d of %d", page.Page, page.TotalPages)
	}
	return nil
}

// fetch lets the catalog do the text search, the rest is filtered locally.
func fetch(ctx context.Context, options *Options) ([]*story.Story, error) {
	filters := options.Filters
	filters.Query = strings.TrimSpace(filters.Query)

	if filters.Query == "" {
		stories, err := options.Catalog.Stories(ctx, options.Language)
		if err != nil {
			return nil, err
		}
		return filters.Apply(stories), nil
	}

	stories, err := options.Catalog.Search(ctx, filters.Query, options.Language)
	if err != nil {
		return nil, err
	}

	filters.Query = ""
	return filters.Apply(stories), nil
}
