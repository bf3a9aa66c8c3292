// Package tokenkey requests JSON Web Key Sets (JWKS) from XSUAA and IAS
// identity providers.
//
// Service is the contract: given the token keys endpoint (the "jku" of a
// token) and a set of header parameters, return the key set as a raw JSON
// string. The package does not parse, verify or cache the result.
//
// Client is the default Service, backed by net/http or fasthttp.
//
// Concurrency: Client is safe for concurrent use. Each call is an independent
// request.
package tokenkey

import (
	"context"
	"net/url"
)

// Service retrieves token key sets.
type Service interface {
	// RetrieveTokenKeys fetches the JWKS from endpoint, sending params as
	// request headers. Use the Header* constants for well-known names.
	//
	// The returned string is the response body as received. Any failure is
	// reported as a *ServiceError.
	RetrieveTokenKeys(ctx context.Context, endpoint *url.URL, params Params) (string, error)
}

// ServiceFunc adapts a function to the Service interface.
type ServiceFunc func(ctx context.Context, endpoint *url.URL, params Params) (string, error)

func (f ServiceFunc) RetrieveTokenKeys(ctx context.Context, endpoint *url.URL, params Params) (string, error) {
	return f(ctx, endpoint, params)
}

// RetrieveTokenKeysForTenant requests the key set for a tenant.
//
// The tenant id is sent as HeaderAppTID. A nil tenantID still creates the
// entry, so s sees a single-entry mapping either way.
func RetrieveTokenKeysForTenant(ctx context.Context, s Service, endpoint *url.URL, tenantID *string) (string, error) {
	return s.RetrieveTokenKeys(ctx, endpoint, Params{HeaderAppTID: tenantID})
}

// RetrieveTokenKeysForTenantAndClient requests the key set for a tenant and
// the client id of the service binding.
//
// Deprecated: use Service.RetrieveTokenKeys with Params built from
// HeaderAppTID and HeaderClientID.
func RetrieveTokenKeysForTenantAndClient(ctx context.Context, s Service, endpoint *url.URL, tenantID, clientID *string) (string, error) {
	params := make(Params, 2)
	params[HeaderAppTID] = tenantID
	params[HeaderClientID] = clientID
	return s.RetrieveTokenKeys(ctx, endpoint, params)
}
