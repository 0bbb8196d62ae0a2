package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

const (
	defaultFirestoreDialTimeout = 10 * time.Second
	envFirestoreEmulatorHost    = "FIRESTORE_EMULATOR_HOST"
	envGoogleProjectID          = "GOOGLE_CLOUD_PROJECT"
)

// ErrProviderClosed is returned once the provider has been closed.
var ErrProviderClosed = errors.New("firestore: provider is closed")

// FirestoreOptions configures the Firestore client.
type FirestoreOptions struct {
	ProjectID    string
	EmulatorHost string
	DialTimeout  time.Duration
	ClientOpts   []option.ClientOption
}

// FirestoreProvider lazily initialises one Firestore client shared by every repository.
type FirestoreProvider struct {
	opts FirestoreOptions

	mu      sync.Mutex
	client  *firestore.Client
	initErr error
	initCh  chan struct{}
	closed  bool
}

// NewFirestoreProvider constructs a provider; no network calls happen until Client is called.
func NewFirestoreProvider(opts FirestoreOptions) *FirestoreProvider {
	if opts.DialTimeout <= 0 {
		opts.DialTimeout = defaultFirestoreDialTimeout
	}
	return &FirestoreProvider{opts: opts}
}

// Name identifies the backend in logs.
func (p *FirestoreProvider) Name() string {
	return "firestore"
}

// Client returns the shared client, creating it on first use. Concurrent callers wait for
// the in-flight initialisation; a failed attempt is retried by the next caller.
func (p *FirestoreProvider) Client(ctx context.Context) (*firestore.Client, error) {
	for {
		p.mu.Lock()
		if p.closed {
			p.mu.Unlock()
			return nil, ErrProviderClosed
		}
		if p.client != nil {
			client := p.client
			p.mu.Unlock()
			return client, nil
		}
		if wait := p.initCh; wait != nil {
			p.mu.Unlock()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-wait:
				p.mu.Lock()
				client, err := p.client, p.initErr
				p.mu.Unlock()
				if client != nil {
					return client, nil
				}
				if err != nil {
					return nil, err
				}
				continue
			}
		}

		wait := make(chan struct{})
		p.initCh = wait
		p.mu.Unlock()

		client, err := p.createClient(ctx)

		p.mu.Lock()
		p.client = client
		p.initErr = err
		p.initCh = nil
		p.mu.Unlock()
		close(wait)

		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

func (p *FirestoreProvider) createClient(ctx context.Context) (*firestore.Client, error) {
	dialCtx, cancel := context.WithTimeout(ctx, p.opts.DialTimeout)
	defer cancel()

	projectID := strings.TrimSpace(p.opts.ProjectID)
	if projectID == "" {
		projectID = strings.TrimSpace(os.Getenv(envGoogleProjectID))
	}
	if projectID == "" {
		return nil, errors.New("firestore: project id is required")
	}

	opts := append([]option.ClientOption(nil), p.opts.ClientOpts...)
	if host := p.emulatorHost(); host != "" {
		opts = append(opts,
			option.WithoutAuthentication(),
			option.WithEndpoint(host),
			option.WithGRPCDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())),
		)
	}

	client, err := firestore.NewClient(dialCtx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: create client: %w", err)
	}
	return client, nil
}

func (p *FirestoreProvider) emulatorHost() string {
	if host := strings.TrimSpace(p.opts.EmulatorHost); host != "" {
		return host
	}
	return strings.TrimSpace(os.Getenv(envFirestoreEmulatorHost))
}

// Close releases the client. The provider cannot be reused afterwards.
func (p *FirestoreProvider) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	client := p.client
	p.client = nil
	p.mu.Unlock()

	if client == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() {
		done <- client.Close()
	}()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}
