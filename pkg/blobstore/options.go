package blobstore

import (
	"fmt"
	"strings"
)

// Options configures a Service. AccountName and ContainerName are required;
// TenantID and ClientID are optional and select the identity mode (see
// CredentialRequest). An empty string means the field is absent.
type Options struct {
	// AccountName is the Azure storage account name. The service endpoint
	// is derived from it as https://{AccountName}.blob.core.windows.net.
	AccountName string

	// ContainerName is the container all operations are bound to.
	ContainerName string

	// TenantID optionally scopes the credential to a Microsoft Entra tenant.
	TenantID string

	// ClientID optionally selects a user-assigned managed identity.
	ClientID string

	// credentialFactory produces the token credential for the resolved
	// CredentialRequest. It exists so tests can substitute a fake identity
	// provider; nil means the azidentity-backed default.
	credentialFactory credentialFactory
}

// Validate checks that the required options are present and non-blank.
func (o Options) Validate() error {
	if strings.TrimSpace(o.AccountName) == "" {
		return fmt.Errorf("%w: account name is required", ErrInvalidConfiguration)
	}
	if strings.TrimSpace(o.ContainerName) == "" {
		return fmt.Errorf("%w: container name is required", ErrInvalidConfiguration)
	}
	return nil
}

// containerURL derives the container endpoint from the account name. The
// blob service domain is fixed; there is no override.
func (o Options) containerURL() string {
	return fmt.Sprintf("https://%s.blob.core.windows.net/%s", o.AccountName, o.ContainerName)
}
