package blobstore

import (
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
)

// BlobDescriptor is the metadata record returned by read operations.
// LastModified, ContentType and ETag are optional; their zero values mean the
// remote service did not report them.
type BlobDescriptor struct {
	Name         string
	SizeBytes    int64
	LastModified time.Time
	ContentType  string
	ETag         string
}

// descriptorFromProperties translates a GetProperties response into a
// BlobDescriptor.
func descriptorFromProperties(name string, resp blob.GetPropertiesResponse) BlobDescriptor {
	d := BlobDescriptor{Name: name}
	if resp.ContentLength != nil {
		d.SizeBytes = *resp.ContentLength
	}
	if resp.LastModified != nil {
		d.LastModified = *resp.LastModified
	}
	if resp.ContentType != nil {
		d.ContentType = *resp.ContentType
	}
	if resp.ETag != nil {
		d.ETag = string(*resp.ETag)
	}
	return d
}

// descriptorFromItem translates a list segment entry into a BlobDescriptor.
func descriptorFromItem(item *container.BlobItem) BlobDescriptor {
	var d BlobDescriptor
	if item.Name != nil {
		d.Name = *item.Name
	}
	if item.Properties == nil {
		return d
	}
	if item.Properties.ContentLength != nil {
		d.SizeBytes = *item.Properties.ContentLength
	}
	if item.Properties.LastModified != nil {
		d.LastModified = *item.Properties.LastModified
	}
	if item.Properties.ContentType != nil {
		d.ContentType = *item.Properties.ContentType
	}
	if item.Properties.ETag != nil {
		d.ETag = string(*item.Properties.ETag)
	}
	return d
}
