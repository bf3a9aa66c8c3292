package tokenkey_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/keksclan/goTokenKey/tokenkey"
)

// recordingService captures the arguments of the canonical call.
type recordingService struct {
	calls    int
	endpoint *url.URL
	params   tokenkey.Params
	result   string
	err      error
}

func (r *recordingService) RetrieveTokenKeys(_ context.Context, endpoint *url.URL, params tokenkey.Params) (string, error) {
	r.calls++
	r.endpoint = endpoint
	r.params = params
	return r.result, r.err
}

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse %q: %v", raw, err)
	}
	return u
}

func TestRetrieveTokenKeysForTenant(t *testing.T) {
	endpoint := mustURL(t, "https://idp.example.com/jwks")

	t.Run("tenant set", func(t *testing.T) {
		rec := &recordingService{result: `{"keys":[]}`}
		got, err := tokenkey.RetrieveTokenKeysForTenant(context.Background(), rec, endpoint, tokenkey.String("tenant-42"))
		if err != nil {
			t.Fatalf("RetrieveTokenKeysForTenant: %v", err)
		}
		if got != `{"keys":[]}` {
			t.Errorf("result: want canonical result, got %q", got)
		}
		if rec.calls != 1 {
			t.Fatalf("calls: want 1, got %d", rec.calls)
		}
		if rec.endpoint != endpoint {
			t.Errorf("endpoint: want %v, got %v", endpoint, rec.endpoint)
		}
		if len(rec.params) != 1 {
			t.Fatalf("params: want exactly 1 entry, got %v", rec.params)
		}
		if v, ok := rec.params.Value("x-app-tid"); !ok || v != "tenant-42" {
			t.Errorf("x-app-tid: want tenant-42, got %q (present=%v)", v, ok)
		}
	})

	t.Run("tenant absent", func(t *testing.T) {
		rec := &recordingService{}
		if _, err := tokenkey.RetrieveTokenKeysForTenant(context.Background(), rec, endpoint, nil); err != nil {
			t.Fatalf("RetrieveTokenKeysForTenant: %v", err)
		}
		if len(rec.params) != 1 {
			t.Fatalf("params: want exactly 1 entry, got %v", rec.params)
		}
		v, ok := rec.params[tokenkey.HeaderAppTID]
		if !ok {
			t.Fatal("tenant entry missing from params")
		}
		if v != nil {
			t.Errorf("tenant value: want absent, got %q", *v)
		}
	})
}

func TestRetrieveTokenKeysForTenantAndClient(t *testing.T) {
	endpoint := mustURL(t, "https://idp.example.com/jwks")

	cases := []struct {
		name     string
		tenantID *string
		clientID *string
	}{
		{"both set", tokenkey.String("tenant-42"), tokenkey.String("client-9")},
		{"tenant absent", nil, tokenkey.String("client-9")},
		{"client absent", tokenkey.String("tenant-42"), nil},
		{"both absent", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recordingService{}
			//nolint:staticcheck // exercising the legacy entry point
			if _, err := tokenkey.RetrieveTokenKeysForTenantAndClient(context.Background(), rec, endpoint, tc.tenantID, tc.clientID); err != nil {
				t.Fatalf("RetrieveTokenKeysForTenantAndClient: %v", err)
			}
			if len(rec.params) != 2 {
				t.Fatalf("params: want exactly 2 entries, got %v", rec.params)
			}
			assertOptional(t, rec.params, "x-app-tid", tc.tenantID)
			assertOptional(t, rec.params, "x-client-id", tc.clientID)
		})
	}
}

func assertOptional(t *testing.T, p tokenkey.Params, name string, want *string) {
	t.Helper()
	got, ok := p[name]
	if !ok {
		t.Errorf("%s: entry missing", name)
		return
	}
	switch {
	case want == nil && got != nil:
		t.Errorf("%s: want absent, got %q", name, *got)
	case want != nil && got == nil:
		t.Errorf("%s: want %q, got absent", name, *want)
	case want != nil && *want != *got:
		t.Errorf("%s: want %q, got %q", name, *want, *got)
	}
}

func TestConvenienceFormsPropagateErrorUnchanged(t *testing.T) {
	endpoint := mustURL(t, "https://idp.example.com/jwks")
	cause := errors.New("connection reset")
	want := &tokenkey.ServiceError{Endpoint: endpoint.String(), Err: cause}
	rec := &recordingService{err: want}

	_, err := tokenkey.RetrieveTokenKeysForTenant(context.Background(), rec, endpoint, tokenkey.String("t"))
	if err != want {
		t.Errorf("tenant form: want the canonical error unchanged, got %v", err)
	}

	//nolint:staticcheck // exercising the legacy entry point
	_, err = tokenkey.RetrieveTokenKeysForTenantAndClient(context.Background(), rec, endpoint, nil, nil)
	if err != want {
		t.Errorf("tenant+client form: want the canonical error unchanged, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause lost: %v", err)
	}
	if !errors.Is(err, tokenkey.ErrServiceRequest) {
		t.Errorf("expected ErrServiceRequest, got %v", err)
	}
}

func TestServiceFunc(t *testing.T) {
	var called bool
	s := tokenkey.ServiceFunc(func(_ context.Context, _ *url.URL, p tokenkey.Params) (string, error) {
		called = true
		if _, ok := p.Value(tokenkey.HeaderAppTID); !ok {
			t.Error("tenant missing")
		}
		return "{}", nil
	})
	got, err := tokenkey.RetrieveTokenKeysForTenant(context.Background(), s, mustURL(t, "https://idp.example.com/jwks"), tokenkey.String("t1"))
	if err != nil || got != "{}" || !called {
		t.Fatalf("ServiceFunc: got (%q, %v), called=%v", got, err, called)
	}
}
