package warehouse

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
)

// Default dataset layout; overridable via cmd flags.
const (
	DefaultBronzeDataset = "bronze"
	DefaultSilverDataset = "silver"
)

// Client is the BigQuery-backed warehouse. It implements BronzeReader,
// SilverStore and BronzeLoader.
type Client struct {
	bq     *bigquery.Client
	bronze string
	silver string
}

// NewClient opens a BigQuery client against the given project. It assumes
// Application Default Credentials are configured.
func NewClient(ctx context.Context, projectID, bronzeDataset, silverDataset string) (*Client, error) {
	bq, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("warehouse: bigquery client: %w", err)
	}
	return NewClientWith(bq, bronzeDataset, silverDataset), nil
}

// NewClientWith wraps an existing BigQuery client.
func NewClientWith(bq *bigquery.Client, bronzeDataset, silverDataset string) *Client {
	if bronzeDataset == "" {
		bronzeDataset = DefaultBronzeDataset
	}
	if silverDataset == "" {
		silverDataset = DefaultSilverDataset
	}
	return &Client{bq: bq, bronze: bronzeDataset, silver: silverDataset}
}

// Close releases the underlying BigQuery client.
func (c *Client) Close() error {
	return c.bq.Close()
}

// runDML executes a statement and waits for the job to finish.
func (c *Client) runDML(ctx context.Context, stmt string, params []bigquery.QueryParameter) error {
	q := c.bq.Query(stmt)
	q.Parameters = params

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("running query: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("job error: %w", err)
	}
	return nil
}

// clearTable deletes every row in a silver table. WHERE true is required by
// BigQuery DML syntax for full-table deletes.
func (c *Client) clearTable(ctx context.Context, table string) error {
	stmt := fmt.Sprintf("DELETE FROM `%s.%s` WHERE true", c.silver, table)
	if err := c.runDML(ctx, stmt, nil); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	return nil
}

func (c *Client) insert(ctx context.Context, dataset, table string, rows interface{}) error {
	inserter := c.bq.Dataset(dataset).Table(table).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("inserting into %s.%s: %w", dataset, table, err)
	}
	return nil
}
