package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/keksclan/goTokenKey/tokenkey"
	"github.com/keksclan/goTokenKey/tokenkeyconfig"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch <endpoint>",
		Short: "Fetch the token keys from an endpoint",
		Long: `Fetch the JSON Web Key Set from an XSUAA or IAS token keys endpoint (the "jku" of a token).

The tenant id is sent as x-app-tid. --client-id adds x-client-id. Further headers
can be passed with --header name=value and override the ones above.`,
		Args: cobra.ExactArgs(1),
		RunE: runFetch,
	}
	cmd.Flags().String("tenant", "", "Tenant id sent as "+tokenkey.HeaderAppTID)
	cmd.Flags().String("client-id", "", "Client id from the service binding, sent as "+tokenkey.HeaderClientID)
	cmd.Flags().StringArrayP("header", "H", nil, "Additional header as name=value, may be repeated")
	cmd.Flags().StringP("config", "c", "", "Config file (.json, .yaml, .yml or .lua)")
	cmd.Flags().String("transport", "", "HTTP client: nethttp or fasthttp (overrides config)")
	cmd.Flags().Duration("timeout", 0, "Request timeout (overrides config)")
	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	endpoint, err := tokenkey.ParseEndpoint(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	log, err := newLogger(cmd)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	client, err := tokenkey.New(*cfg, tokenkey.WithLogger(log))
	if err != nil {
		return fmt.Errorf("init client: %w", err)
	}

	tenantID := optionalFlag(cmd, "tenant")
	clientID := optionalFlag(cmd, "client-id")
	headers, _ := cmd.Flags().GetStringArray("header")

	var keys string
	switch {
	case len(headers) > 0:
		params := tokenkey.Params{}
		if tenantID != nil {
			params[tokenkey.HeaderAppTID] = tenantID
		}
		if clientID != nil {
			params[tokenkey.HeaderClientID] = clientID
		}
		for _, h := range headers {
			name, value, ok := strings.Cut(h, "=")
			if !ok || strings.TrimSpace(name) == "" {
				return fmt.Errorf("invalid header %q, want name=value", h)
			}
			params[strings.TrimSpace(name)] = tokenkey.String(value)
		}
		keys, err = client.RetrieveTokenKeys(ctx, endpoint, params)
	case clientID != nil:
		//nolint:staticcheck // kept for callers that still pass a client id
		keys, err = tokenkey.RetrieveTokenKeysForTenantAndClient(ctx, client, endpoint, tenantID, clientID)
	default:
		keys, err = tokenkey.RetrieveTokenKeysForTenant(ctx, client, endpoint, tenantID)
	}
	if err != nil {
		log.Debug("fetch failed", zap.Error(err))
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), keys)
	return err
}

func loadConfig(ctx context.Context, cmd *cobra.Command) (*tokenkey.Config, error) {
	var loader tokenkeyconfig.Loader
	path, _ := cmd.Flags().GetString("config")
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case path == "":
		loader = tokenkeyconfig.FromGo(tokenkey.Config{})
	case ext == ".json":
		loader = tokenkeyconfig.FromJSONFile(path)
	case ext == ".yaml" || ext == ".yml":
		loader = tokenkeyconfig.FromYAMLFile(path)
	case ext == ".lua":
		loader = tokenkeyconfig.FromLuaFile(path)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q", ext)
	}

	cfg, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("transport") {
		tr, _ := cmd.Flags().GetString("transport")
		cfg.Transport = tokenkey.TransportKind(tr)
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	return cfg, nil
}

// optionalFlag returns nil when the flag was not given, so an unset tenant is
// passed on as absent rather than as an empty string.
func optionalFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}
