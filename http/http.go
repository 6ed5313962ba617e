// Package http provides HTTP implementations of arenadl.ChannelService and
// arenadl.AssetFetcher.
package http

import (
	"fmt"
	"net/http"

	"github.com/fwojciec/arenadl"
)

// statusError maps a non-2xx response to an application error.
// Authentication failures and missing resources keep their own codes so
// callers can react to them; everything else is internal.
func statusError(resp *http.Response, what string) error {
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return arenadl.Errorf(arenadl.EUNAUTHORIZED, "%s: access denied (HTTP %d)", what, resp.StatusCode)
	case http.StatusNotFound:
		return arenadl.Errorf(arenadl.ENOTFOUND, "%s: not found", what)
	}
	return fmt.Errorf("%s: HTTP %d", what, resp.StatusCode)
}
