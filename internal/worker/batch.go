package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ymiyake/bukkengen/internal/model"
)

// Describer runs one generation request. Satisfied by pipeline.Pipeline.
type Describer interface {
	Describe(ctx context.Context, req model.DescribeRequest) (*model.Result, error)
}

// DescribeJob is one queued generation request.
type DescribeJob struct {
	Request   model.DescribeRequest
	Describer Describer
}

// Execute runs the request and wraps the outcome.
func (j *DescribeJob) Execute(ctx context.Context) Result {
	result, err := j.Describer.Describe(ctx, j.Request)
	return &DescribeResult{
		Request: j.Request,
		Result:  result,
		Error:   err,
	}
}

// DescribeResult pairs a request with its outcome.
type DescribeResult struct {
	Request model.DescribeRequest
	Result  *model.Result
	Error   error
}

// GetError returns the error from the result.
func (r *DescribeResult) GetError() error {
	return r.Error
}

// BatchProcessor runs many generation requests concurrently.
type BatchProcessor struct {
	describer   Describer
	concurrency int
}

// NewBatchProcessor creates a new batch processor.
func NewBatchProcessor(describer Describer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		describer:   describer,
		concurrency: concurrency,
	}
}

// ProcessRequests runs requests through the worker pool.
func (b *BatchProcessor) ProcessRequests(ctx context.Context, requests []model.DescribeRequest) []*DescribeResult {
	if len(requests) == 0 {
		return []*DescribeResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, req := range requests {
		pool.Submit(&DescribeJob{
			Request:   req,
			Describer: b.describer,
		})
	}

	results := pool.Wait()

	out := make([]*DescribeResult, len(results))
	for i, result := range results {
		out[i] = result.(*DescribeResult)
	}
	return out
}

// ProcessFile reads requests from a file and runs them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, defaults model.DescribeRequest) ([]*DescribeResult, error) {
	requests, err := ReadRequestsFromFile(filePath, defaults)
	if err != nil {
		return nil, fmt.Errorf("read requests: %w", err)
	}
	return b.ProcessRequests(ctx, requests), nil
}

// ReadRequestsFromFile parses one request per line. A line is either a bare
// listing URL (a single-source request using the supplied defaults) or a
// JSON DescribeRequest object for full control. Empty lines and # comments
// are skipped; duplicate URL lines are deduplicated.
func ReadRequestsFromFile(filePath string, defaults model.DescribeRequest) ([]model.DescribeRequest, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var requests []model.DescribeRequest
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "{") {
			req := defaults
			if err := json.Unmarshal([]byte(line), &req); err != nil {
				return nil, fmt.Errorf("parse request line: %w", err)
			}
			requests = append(requests, req)
			continue
		}

		if seen[line] {
			continue
		}
		seen[line] = true

		req := defaults
		req.Sources = []string{line}
		requests = append(requests, req)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return requests, nil
}
