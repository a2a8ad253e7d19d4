package gpt

import (
	"context"
	"sync"

	gpt "github.com/m-ariany/gpt-chat-client"
)

var (
	client *gpt.Client
	once   sync.Once
)

// Prompter sends a single instruction and prompt to the model and returns its answer.
type Prompter interface {
	Complete(ctx context.Context, instruction, prompt string) (string, error)
}

type ClientFactory interface {
	Prompter
	Client() (Client, error)
	ClientWithConfig(ClientConfig) (Client, error)
}

type factory struct {
}

func NewClientFactory(cnf ClientConfig) (ClientFactory, error) {
	var err error
	once.Do(func() {
		client, err = gpt.NewClient(cnf)
	})
	return &factory{}, err
}

func (g factory) Client() (Client, error) {
	return Client{Client: client.Clone()}, nil
}

func (g factory) ClientWithConfig(cnf ClientConfig) (Client, error) {
	return Client{Client: client.CloneWithConfig(cnf)}, nil
}

// Complete uses a fresh clone so no chat history leaks between requests.
func (g factory) Complete(ctx context.Context, instruction, prompt string) (string, error) {
	c, err := g.Client()
	if err != nil {
		return "", err
	}

	c.Instruct(instruction)
	return c.Prompt(ctx, prompt)
}

type Client struct {
	*gpt.Client
}

type ClientConfig = gpt.ClientConfig
