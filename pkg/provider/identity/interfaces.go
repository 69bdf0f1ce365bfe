package identity

import "context"

// Identity is the read-only KYC collaborator.
type Identity interface {
	// GetAccount returns nil and no error when the user has no identity account.
	GetAccount(ctx context.Context, userID, scope string) (*Account, error)

	// GetDocument returns the photo links of a government id document.
	GetDocument(ctx context.Context, documentID string) (*Document, error)
}

// DocumentFetcher downloads document images from the signed links in a Document.
type DocumentFetcher interface {
	FetchBytes(ctx context.Context, rawURL string) ([]byte, error)
}
