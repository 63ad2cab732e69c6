package blobstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"go.uber.org/zap"
)

func TestNewService_Validation(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name          string
		accountName   string
		containerName string
		wantErr       bool
	}{
		{
			name:          "valid configuration",
			accountName:   "testaccount",
			containerName: "test-container",
			wantErr:       false,
		},
		{
			name:          "missing account name",
			accountName:   "",
			containerName: "test-container",
			wantErr:       true,
		},
		{
			name:          "blank account name",
			accountName:   "   ",
			containerName: "test-container",
			wantErr:       true,
		},
		{
			name:          "missing container name",
			accountName:   "testaccount",
			containerName: "",
			wantErr:       true,
		},
		{
			name:          "blank container name",
			accountName:   "testaccount",
			containerName: "\t",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := Options{
				AccountName:       tt.accountName,
				ContainerName:     tt.containerName,
				credentialFactory: fakeCredentialFactory(nil),
			}

			svc, err := NewService(opts, logger)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewService() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfiguration) {
					t.Errorf("NewService() error = %v, want ErrInvalidConfiguration", err)
				}
				return
			}
			if svc == nil {
				t.Fatal("NewService() returned nil service")
			}
			if svc.containerName != tt.containerName {
				t.Errorf("containerName = %v, want %v", svc.containerName, tt.containerName)
			}
		})
	}
}

func TestNewService_InvalidConfigurationSkipsCredentialResolution(t *testing.T) {
	calls := 0
	opts := Options{
		AccountName:   "",
		ContainerName: "test-container",
		credentialFactory: func(req CredentialRequest) (azcore.TokenCredential, error) {
			calls++
			return nil, errors.New("should not be called")
		},
	}

	_, err := NewService(opts, zap.NewNop())
	if !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("NewService() error = %v, want ErrInvalidConfiguration", err)
	}
	if calls != 0 {
		t.Errorf("credential factory called %d times, want 0", calls)
	}
}

func TestOptions_ContainerURL(t *testing.T) {
	opts := Options{AccountName: "myaccount", ContainerName: "mycontainer"}

	got := opts.containerURL()
	want := "https://myaccount.blob.core.windows.net/mycontainer"
	if got != want {
		t.Errorf("containerURL() = %v, want %v", got, want)
	}
}

// staticTokenCredential is a do-nothing credential used for unit testing.
type staticTokenCredential struct{}

func (staticTokenCredential) GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error) {
	return azcore.AccessToken{Token: "aaa", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

// fakeCredentialFactory returns a factory that records the request it was
// handed and produces a do-nothing credential.
func fakeCredentialFactory(record *CredentialRequest) credentialFactory {
	return func(req CredentialRequest) (azcore.TokenCredential, error) {
		if record != nil {
			*record = req
		}
		return staticTokenCredential{}, nil
	}
}
