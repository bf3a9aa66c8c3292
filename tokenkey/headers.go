package tokenkey

// Well-known header names understood by XSUAA and IAS token key endpoints.
// Use them as Params keys.
const (
	// HeaderAppTID carries the tenant identifier. Multi-tenant IAS applications
	// must send it so the key set is checked against the right tenant.
	HeaderAppTID = "x-app-tid"

	// HeaderClientID carries the client id from the service binding.
	HeaderClientID = "x-client-id"

	// HeaderAzp carries the authorized party of the token the keys are fetched for.
	HeaderAzp = "x-azp"

	// HeaderClientCert carries a forwarded client certificate.
	HeaderClientCert = "x-client-cert"
)
