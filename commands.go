package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"jsonq/client"
	"jsonq/config"
	"jsonq/formats"
	"jsonq/models"
	"jsonq/query"
	"jsonq/response"

	"github.com/alecthomas/kong"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// QueryFlags are shared by every command that sends a list query
type QueryFlags struct {
	Where   []string `help:"Field condition as key=value, e.g. name=John or age_gte=18" short:"w"`
	Page    int      `help:"Page number, starting at 1"`
	PerPage int      `help:"Page size (_per_page)" name:"per-page"`
	Limit   int      `help:"Legacy page size (_limit)"`
	Slice   string   `help:"Offset range as start:end, end exclusive"`
	Sort    string   `help:"Sort field, several may be comma separated"`
	Order   string   `help:"Sort order" enum:"asc,desc" default:"asc"`
	Embed   []string `help:"Child collection to embed"`
	Expand  []string `help:"Parent entity to expand"`
	Search  string   `help:"Full-text search keyword" short:"q"`
}

// builder translates the flags into a query. Flags are applied in a fixed
// order so the same command line always yields the same query string.
func (f *QueryFlags) builder() (*query.Builder, error) {
	q := query.New()

	for _, cond := range f.Where {
		key, value, ok := strings.Cut(cond, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid condition %q, expected key=value", cond)
		}
		q.Where(key, value)
	}

	if f.Page > 0 {
		if f.PerPage <= 0 && f.Limit <= 0 {
			return nil, fmt.Errorf("--page requires --per-page or --limit")
		}
		// with both sizes set, both are sent and the server picks one
		if f.PerPage > 0 {
			q.PaginateBySize(f.Page, f.PerPage)
		}
		if f.Limit > 0 {
			q.Paginate(f.Page, f.Limit)
		}
	}

	if f.Slice != "" {
		start, end, err := parseSlice(f.Slice)
		if err != nil {
			return nil, err
		}
		q.Slice(start, end)
	}

	if f.Sort != "" {
		q.Sort(f.Sort, models.Order(f.Order))
	}
	if len(f.Embed) > 0 {
		q.Embed(f.Embed...)
	}
	if len(f.Expand) > 0 {
		q.Expand(f.Expand...)
	}
	if f.Search != "" {
		q.Search(f.Search)
	}
	return q, nil
}

func parseSlice(s string) (int, int, error) {
	startStr, endStr, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid slice %q, expected start:end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(startStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slice start: %w", err)
	}
	end, err := strconv.Atoi(strings.TrimSpace(endStr))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid slice end: %w", err)
	}
	return start, end, nil
}

type QueryCmd struct {
	QueryFlags `embed:""`
}

func (c *QueryCmd) Run(ctx *kong.Context) error {
	q, err := c.builder()
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.Stdout, q.Encode())
	return nil
}

type FetchCmd struct {
	QueryFlags `embed:""`

	Resource   string `arg:"" help:"List resource, e.g. users"`
	BaseURL    string `help:"API base URL (overrides JSONQ_BASE_URL env var)" name:"base-url"`
	RecordsKey string `help:"Envelope field holding the records (overrides JSONQ_RECORDS_KEY env var)" name:"records-key"`
}

func (c *FetchCmd) Run(ctx *kong.Context) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags override env
	if c.BaseURL != "" {
		cfg.BaseURL = c.BaseURL
	}
	if c.RecordsKey != "" {
		cfg.RecordsKey = c.RecordsKey
	}

	zapLogger := newLogger(cfg)
	defer zapLogger.Sync()

	q, err := c.builder()
	if err != nil {
		return err
	}

	apiClient := client.New(cfg.BaseURL, cfg.Timeout, zapLogger,
		client.WithNormalizer(response.New(response.WithRecordsKey(cfg.RecordsKey))),
	)

	zapLogger.Debug("Fetching resource",
		zap.String("resource", c.Resource),
		zap.String("url", apiClient.URL(c.Resource, q)),
	)

	result, err := client.List[any](context.Background(), apiClient, c.Resource, q)
	if err != nil {
		return err
	}
	return writeResult(ctx.Stdout, result)
}

type NormalizeCmd struct {
	Path       string `arg:"" optional:"" help:"Response file to read, stdin when omitted or -"`
	Format     string `help:"Payload format" enum:"json,jsoneachrow,msgpack" default:"json"`
	RecordsKey string `help:"Envelope field holding the records (overrides JSONQ_RECORDS_KEY env var)" name:"records-key"`
}

func (c *NormalizeCmd) Run(ctx *kong.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if c.RecordsKey != "" {
		cfg.RecordsKey = c.RecordsKey
	}

	var data []byte
	if c.Path == "" || c.Path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(c.Path)
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	return c.normalize(ctx.Stdout, data, cfg.RecordsKey)
}

func (c *NormalizeCmd) normalize(w io.Writer, data []byte, recordsKey string) error {
	decoder, err := formats.GetDecoder(c.Format)
	if err != nil {
		return fmt.Errorf("%w: %s", err, c.Format)
	}

	payload, err := decoder.Decode(data)
	if err != nil {
		return err
	}

	result, err := response.Decode[any](response.New(response.WithRecordsKey(recordsKey)), payload)
	if err != nil {
		return err
	}
	return writeResult(w, result)
}

// listOutput is what fetch and normalize print
type listOutput struct {
	Records    []any                  `json:"records"`
	Total      int                    `json:"total"`
	Shape      string                 `json:"shape"`
	Pagination *models.PaginationInfo `json:"pagination,omitempty"`
}

func writeResult(w io.Writer, result response.Result[any]) error {
	out := listOutput{
		Records: result.List.Records,
		Total:   result.List.Total,
		Shape:   result.Shape.String(),
	}
	if info, ok := result.Pagination(); ok {
		out.Pagination = &info
	}

	data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
