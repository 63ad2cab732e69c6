// Package blobstore is a thin facade over Azure Blob Storage, bound to a
// single container and authenticated with managed identities instead of
// account keys. It validates arguments, delegates each operation to one SDK
// call and translates responses into plain descriptors; retries, pagination
// internals and token refresh remain the SDK's responsibility.
package blobstore
