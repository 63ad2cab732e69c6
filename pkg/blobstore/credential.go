package blobstore

import (
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// CredentialMode identifies which kind of identity is requested from the
// identity provider.
type CredentialMode string

const (
	// CredentialModeDefaultChain requests the provider's default identity
	// chain (environment, workload identity, managed identity, CLI).
	CredentialModeDefaultChain CredentialMode = "default-chain"

	// CredentialModeUserAssigned requests a specific user-assigned managed
	// identity by client id.
	CredentialModeUserAssigned CredentialMode = "user-assigned"
)

// CredentialRequest describes the identity request a Service will hand to the
// identity provider. It is a pure function of the Options and carries no
// secrets, so tests can assert on it without any network access.
type CredentialRequest struct {
	Mode     CredentialMode
	TenantID string
	ClientID string
}

// CredentialRequest resolves the identity mode from which optional fields are
// set:
//
//	TenantID  ClientID  request
//	absent    absent    default chain
//	present   absent    default chain, scoped to the tenant
//	absent    present   user-assigned identity by client id
//	present   present   user-assigned identity by client id, tenant carried
func (o Options) CredentialRequest() CredentialRequest {
	req := CredentialRequest{
		Mode:     CredentialModeDefaultChain,
		TenantID: o.TenantID,
		ClientID: o.ClientID,
	}
	if o.ClientID != "" {
		req.Mode = CredentialModeUserAssigned
	}
	return req
}

// credentialFactory turns a CredentialRequest into a token credential. The
// default implementation talks to azidentity; tests substitute a fake.
type credentialFactory func(req CredentialRequest) (azcore.TokenCredential, error)

// defaultCredentialFactory maps a CredentialRequest onto azidentity. Token
// acquisition and refresh are entirely azidentity's concern; nothing is
// fetched here. For a user-assigned identity the IMDS endpoint does not take
// a tenant parameter, so the tenant id is carried in the request only.
func defaultCredentialFactory(req CredentialRequest) (azcore.TokenCredential, error) {
	switch req.Mode {
	case CredentialModeUserAssigned:
		cred, err := azidentity.NewManagedIdentityCredential(&azidentity.ManagedIdentityCredentialOptions{
			ID: azidentity.ClientID(req.ClientID),
		})
		if err != nil {
			return nil, fmt.Errorf("create managed identity credential: %w", err)
		}
		return cred, nil
	default:
		var opts *azidentity.DefaultAzureCredentialOptions
		if req.TenantID != "" {
			opts = &azidentity.DefaultAzureCredentialOptions{TenantID: req.TenantID}
		}
		cred, err := azidentity.NewDefaultAzureCredential(opts)
		if err != nil {
			return nil, fmt.Errorf("create default credential chain: %w", err)
		}
		return cred, nil
	}
}
