// Package google handles OAuth2 authentication against Google: the client
// configuration, the authorization-code exchange, and the on-disk token
// cache with refresh-on-demand token sources.
package google
