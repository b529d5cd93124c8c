package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"portfolio/internal/domain"
)

// BlobStore keeps the document as a single object in a Vercel-Blob-style
// object store, for deployments without a writable local disk. The object
// lives under the fixed pathname Key; if it does not exist yet, Read seeds it
// from the bundled default document.
type BlobStore struct {
	apiURL     string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewBlobStore(apiURL, token string, logger *slog.Logger) *BlobStore {
	return &BlobStore{
		apiURL: apiURL,
		token:  token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// blobInfo is one entry of the store's list response.
type blobInfo struct {
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
}

type listResponse struct {
	Blobs []blobInfo `json:"blobs"`
}

func (s *BlobStore) Read(ctx context.Context) (*domain.PortfolioDocument, error) {
	info, err := s.find(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	if info == nil {
		// Nothing stored yet - seed the blob from the bundled document.
		doc, err := SeedDocument()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}
		if err := ValidateDocument(doc); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
		}

		s.logger.Info("seeding blob store from bundled default document", "key", Key)
		if err := s.Write(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}

	doc, err := s.download(ctx, info.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return doc, nil
}

func (s *BlobStore) Write(ctx context.Context, doc *domain.PortfolioDocument) error {
	if err := ValidateDocument(doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	payload, err := marshalDocument(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.apiURL+"/"+Key, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("x-api-version", "7")
	req.Header.Set("x-content-type", "application/json")
	// The object must stay at the fixed pathname across writes.
	req.Header.Set("x-add-random-suffix", "0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreWriteFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: blob store rejected token (status %d)", domain.ErrStoreWriteDenied, resp.StatusCode)
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: blob store returned status %d: %s", domain.ErrStoreWriteFailed, resp.StatusCode, string(body))
	}
}

// find lists objects under the fixed key prefix and returns the matching
// entry, or nil when the document has never been written.
func (s *BlobStore) find(ctx context.Context) (*blobInfo, error) {
	listURL := s.apiURL + "/?prefix=" + url.QueryEscape(Key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("x-api-version", "7")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("blob list failed with status %d: %s", resp.StatusCode, string(body))
	}

	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode blob list: %w", err)
	}

	for i := range list.Blobs {
		if list.Blobs[i].Pathname == Key {
			return &list.Blobs[i], nil
		}
	}
	return nil, nil
}

func (s *BlobStore) download(ctx context.Context, blobURL string) (*domain.PortfolioDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, blobURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("blob download failed with status %d", resp.StatusCode)
	}

	var doc domain.PortfolioDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("corrupt portfolio data in blob store: %w", err)
	}

	return &doc, nil
}
