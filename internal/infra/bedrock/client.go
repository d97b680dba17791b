package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const defaultAnthropicVersion = "bedrock-2023-05-31"

// Client invokes an Anthropic model hosted on AWS Bedrock. It is built once
// at startup, holds no mutable state afterwards, and is safe for concurrent
// use.
type Client struct {
	BedrockClient    *bedrockruntime.Client
	Model            string
	Region           string
	AnthropicVersion string
	MaxRetries       int
	Config           *aws.Config
}

// ClientOption customizes a Client during construction.
type ClientOption func(*Client)

// WithRegion selects the AWS region for the model endpoint.
func WithRegion(region string) ClientOption {
	return func(c *Client) { c.Region = region }
}

// WithMaxRetries bounds the retry loop around InvokeModel.
func WithMaxRetries(n int) ClientOption {
	return func(c *Client) { c.MaxRetries = n }
}

// WithConfig injects a pre-built AWS config, bypassing the default
// credential chain. Used by tests.
func WithConfig(cfg *aws.Config) ClientOption {
	return func(c *Client) { c.Config = cfg }
}

// NewClient creates a Bedrock client for the given model. Credentials come
// from the default AWS chain unless WithConfig overrides them.
func NewClient(ctx context.Context, model string, options ...ClientOption) (*Client, error) {
	if model == "" {
		return nil, fmt.Errorf("bedrock: model is required")
	}

	client := &Client{
		Model:            model,
		AnthropicVersion: defaultAnthropicVersion,
		MaxRetries:       2,
	}
	for _, option := range options {
		option(client)
	}

	if client.Config == nil {
		cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(client.Region))
		if err != nil {
			return nil, fmt.Errorf("bedrock: load aws config: %w", err)
		}
		client.Config = &cfg
	}
	client.BedrockClient = bedrockruntime.NewFromConfig(*client.Config)
	return client, nil
}

// Invoke sends one messages request to the model and returns its response.
// Retries the InvokeModel call up to MaxRetries times; the context is the
// only cancellation mechanism; no deadline is imposed here.
func (c *Client) Invoke(ctx context.Context, request *Request) (*Response, error) {
	request.AnthropicVersion = c.AnthropicVersion

	data, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("bedrock: marshal request: %w", err)
	}

	invokeRequest := &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.Model),
		Body:        data,
		ContentType: aws.String("application/json"),
	}

	var resp *bedrockruntime.InvokeModelOutput
	var invokeErr error
	for i := 0; i < max(1, c.MaxRetries); i++ {
		resp, invokeErr = c.BedrockClient.InvokeModel(ctx, invokeRequest)
		if invokeErr == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
	}
	if invokeErr != nil {
		return nil, fmt.Errorf("bedrock: invoke model %s: %w", c.Model, invokeErr)
	}

	var apiResp Response
	if err := json.Unmarshal(resp.Body, &apiResp); err != nil {
		return nil, fmt.Errorf("bedrock: unmarshal response: %w", err)
	}
	apiResp.Model = c.Model

	return &apiResp, nil
}
