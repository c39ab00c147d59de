// Package mirror implements a read-only client for the mirror node REST API.
// The mirror node ingests consensus network records asynchronously, so
// lookups for freshly submitted transactions may transiently return 404; the
// client polls those with backoff before giving up.
package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spalladino/hedera-json-rpc-relay/internal/pkg/resilience/retry"
)

// ErrNotFound indicates that the mirror node has no record of the requested
// resource, even after polling.
var ErrNotFound = errors.New("mirror node resource not found")

// Block is the subset of a mirror node block the relay consumes.
type Block struct {
	Number int64  `json:"number"`
	Hash   string `json:"hash"`
}

// Log is a contract log entry attached to a contract result.
type Log struct {
	Address string   `json:"address"`
	Bloom   string   `json:"bloom"`
	Data    string   `json:"data"`
	Index   int64    `json:"index"`
	Topics  []string `json:"topics"`
}

// ContractResult is the mirror node record of an executed contract
// transaction. Status is "0x1" for success and "0x0" for failure.
type ContractResult struct {
	Address          string `json:"address"`
	Bloom            string `json:"bloom"`
	BlockHash        string `json:"block_hash"`
	BlockNumber      int64  `json:"block_number"`
	ContractID       string `json:"contract_id"`
	ErrorMessage     string `json:"error_message"`
	From             string `json:"from"`
	GasLimit         int64  `json:"gas_limit"`
	GasUsed          int64  `json:"gas_used"`
	Hash             string `json:"hash"`
	Logs             []Log  `json:"logs"`
	Status           string `json:"status"`
	To               string `json:"to"`
	TransactionIndex int64  `json:"transaction_index"`

	// CreatedContractIDs is non-empty when the transaction deployed
	// contracts.
	CreatedContractIDs []string `json:"created_contract_ids"`
}

// blocksPage is the envelope of the paginated blocks listing.
type blocksPage struct {
	Blocks []Block `json:"blocks"`
}

// Client defines the mirror node operations the relay depends on.
type Client interface {
	// LatestBlockNumber returns the number of the most recent block the
	// mirror node has ingested.
	LatestBlockNumber(ctx context.Context) (int64, error)

	// ContractResult looks up the execution record of an Ethereum
	// transaction by its hash. It polls while the mirror node has not
	// ingested the record yet and returns ErrNotFound once polling is
	// exhausted.
	ContractResult(ctx context.Context, transactionHash string) (ContractResult, error)
}

type client struct {
	baseURL       string
	httpClient    *http.Client
	notFoundRetry retry.Retry
}

// Compile-time assertion that client implements the Client interface.
var _ Client = (*client)(nil)

// Option defines a functional option for configuring the mirror client.
type Option func(*client)

// WithNotFoundRetry replaces the polling policy used while a resource has not
// been ingested yet.
func WithNotFoundRetry(r retry.Retry) Option {
	return func(c *client) {
		c.notFoundRetry = r
	}
}

// NewClient constructs a mirror node client rooted at baseURL. The HTTP
// client is expected to carry its own transport-level retries.
func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *client {
	c := &client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		notFoundRetry: retry.New(
			retry.WithAttempts(4),
			retry.WithDelay(500*time.Millisecond),
			retry.WithMaxDelay(2*time.Second),
		),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *client) LatestBlockNumber(ctx context.Context) (int64, error) {
	var page blocksPage
	if err := c.get(ctx, "/api/v1/blocks?order=desc&limit=1", &page); err != nil {
		return 0, err
	}

	if len(page.Blocks) == 0 {
		return 0, ErrNotFound
	}

	return page.Blocks[0].Number, nil
}

func (c *client) ContractResult(ctx context.Context, transactionHash string) (ContractResult, error) {
	path := "/api/v1/contracts/results/" + transactionHash

	var result ContractResult
	err := c.notFoundRetry.Execute(ctx, func() error {
		err := c.get(ctx, path, &result)
		if err != nil && !errors.Is(err, ErrNotFound) {
			// Only ingestion lag is worth polling for.
			return retry.Unrecoverable(err)
		}

		return err
	})

	return result, err
}

// get performs a GET request against the mirror node and decodes the JSON
// response into out.
func (c *client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode != http.StatusOK:
		return fmt.Errorf("mirror node returned status %d for %s", res.StatusCode, path)
	}

	return json.NewDecoder(res.Body).Decode(out)
}
