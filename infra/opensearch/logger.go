package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
)

// GatewayLog represents a structured gateway request log entry
type GatewayLog struct {
	Timestamp        time.Time `json:"timestamp"`
	Gateway          string    `json:"gateway"`
	Operation        string    `json:"operation,omitempty"`
	Method           string    `json:"method"`
	Endpoint         string    `json:"endpoint"`
	RequestID        string    `json:"request_id"`
	ClientIP         string    `json:"client_ip,omitempty"`
	StatusCode       int       `json:"status_code"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
	ErrorMessage     string    `json:"error_message,omitempty"`
}

// Logger handles OpenSearch logging operations
type Logger struct {
	client *Client
}

// NewLogger creates a new OpenSearch logger
func NewLogger(client *Client) *Logger {
	return &Logger{
		client: client,
	}
}

// LogGatewayRequest indexes a gateway request log entry
func (l *Logger) LogGatewayRequest(ctx context.Context, entry GatewayLog) error {
	if !l.client.IsEnabled() {
		return nil // Logging disabled
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if entry.RequestID == "" {
		entry.RequestID = uuid.New().String()
	}
	if entry.Gateway == "" {
		entry.Gateway = "paypal"
	}

	indexName := l.client.GetLogIndexName(entry.Gateway)

	logJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal log: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index: indexName,
		Body:  bytes.NewReader(logJSON),
	}

	res, err := req.Do(ctx, l.client.GetClient())
	if err != nil {
		return fmt.Errorf("failed to index log: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch error: %s", res.String())
	}

	return nil
}

// IndexDocument indexes an arbitrary document into the named index
func (l *Logger) IndexDocument(ctx context.Context, index string, doc any) error {
	if !l.client.IsEnabled() {
		return nil
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := opensearchapi.IndexRequest{
		Index: index,
		Body:  bytes.NewReader(docJSON),
	}

	res, err := req.Do(ctx, l.client.GetClient())
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("opensearch error: %s", res.String())
	}

	return nil
}
