package blobstore

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// containerClient is the subset of Azure Blob Storage calls the Service
// performs, one method per remote operation. The indirection exists so unit
// tests can substitute a fake collaborator and assert on delegation without
// network access.
type containerClient interface {
	Upload(ctx context.Context, name string, body io.Reader, contentType string) error
	Download(ctx context.Context, name string) (io.ReadCloser, error)
	Properties(ctx context.Context, name string) (blob.GetPropertiesResponse, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context, prefix string) ([]*container.BlobItem, error)
}

// azureContainerClient implements containerClient against one container of a
// real storage account. Retries, TLS and token refresh belong to the SDK.
type azureContainerClient struct {
	container *container.Client
}

func newAzureContainerClient(o Options) (*azureContainerClient, error) {
	factory := o.credentialFactory
	if factory == nil {
		factory = defaultCredentialFactory
	}

	cred, err := factory(o.CredentialRequest())
	if err != nil {
		return nil, fmt.Errorf("resolve credential: %w", err)
	}

	client, err := container.NewClient(o.containerURL(), cred, nil)
	if err != nil {
		return nil, fmt.Errorf("create container client: %w", err)
	}

	return &azureContainerClient{container: client}, nil
}

func (c *azureContainerClient) Upload(ctx context.Context, name string, body io.Reader, contentType string) error {
	opts := &blockblob.UploadStreamOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: &contentType}
	}

	_, err := c.container.NewBlockBlobClient(name).UploadStream(ctx, body, opts)

	return err
}

func (c *azureContainerClient) Download(ctx context.Context, name string) (io.ReadCloser, error) {
	resp, err := c.container.NewBlobClient(name).DownloadStream(ctx, nil)
	if err != nil {
		return nil, err
	}

	return resp.Body, nil
}

func (c *azureContainerClient) Properties(ctx context.Context, name string) (blob.GetPropertiesResponse, error) {
	return c.container.NewBlobClient(name).GetProperties(ctx, nil)
}

func (c *azureContainerClient) Delete(ctx context.Context, name string) error {
	_, err := c.container.NewBlobClient(name).Delete(ctx, nil)

	return err
}

func (c *azureContainerClient) List(ctx context.Context, prefix string) ([]*container.BlobItem, error) {
	opts := &container.ListBlobsFlatOptions{}
	if prefix != "" {
		opts.Prefix = &prefix
	}

	var items []*container.BlobItem

	pager := c.container.NewListBlobsFlatPager(opts)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Segment.BlobItems...)
	}

	return items, nil
}
