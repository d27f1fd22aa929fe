package sources

import (
	"context"
	"net/url"
)

// Getter performs GET requests against the API and decodes the JSON body
// into v. *utils.API is the production implementation.
type Getter interface {
	Get(ctx context.Context, path string, params url.Values, v any) error
	BaseURL() string
}
