package provider

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const defaultPollInterval = 2 * time.Second

// RPCProvider talks to a wallet that exposes the EIP-1193 methods over JSON-RPC
// (a wallet bridge, a signer daemon or a dev node with unlocked accounts).
// Several URLs may be configured; a URL whose transport fails is skipped in favour of the next one.
// Account changes are detected by polling eth_accounts.
type RPCProvider struct {
	name         string
	urls         []string
	pollInterval time.Duration

	mu      sync.Mutex
	clients []*rpc.Client
	current int // index of the client used last

	watchMu      sync.Mutex
	handlers     map[uint64]AccountsChangedHandler
	nextHandler  uint64
	stopWatching context.CancelFunc
}

// NewRPCProvider dials every URL. A URL that cannot be dialed is kept and retried on use,
// so construction only fails when the context is already done.
func NewRPCProvider(ctx context.Context, name string, urls []string, pollInterval time.Duration) (*RPCProvider, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to create RPC provider")
	}

	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	clients := make([]*rpc.Client, 0, len(urls))
	for _, url := range urls {
		client, err := rpc.DialContext(ctx, url)
		if err != nil {
			log.Warn().
				Str("url", url).
				Err(err).
				Msg("Failed to dial wallet RPC endpoint, will retry on use")
			clients = append(clients, nil)
			continue
		}
		clients = append(clients, client)
	}

	return &RPCProvider{
		name:         name,
		urls:         urls,
		pollInterval: pollInterval,
		clients:      clients,
		handlers:     make(map[uint64]AccountsChangedHandler),
	}, nil
}

func (p *RPCProvider) Name() string {
	return p.name
}

// Present reports whether at least one endpoint has a dialed client.
func (p *RPCProvider) Present() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, client := range p.clients {
		if client != nil {
			return true
		}
	}
	return false
}

// RequestAccounts issues eth_requestAccounts. Wallet rejections are returned as they are
// (they carry an error code), transport failures move on to the next endpoint.
func (p *RPCProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.call(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Accounts issues eth_accounts, which never prompts the user.
func (p *RPCProvider) Accounts(ctx context.Context) ([]string, error) {
	var accounts []string
	if err := p.call(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Ping checks that some endpoint answers eth_chainId.
func (p *RPCProvider) Ping(ctx context.Context) error {
	var chainID string
	return p.call(ctx, &chainID, "eth_chainId")
}

func (p *RPCProvider) call(ctx context.Context, result interface{}, method string) error {
	p.mu.Lock()
	count := len(p.clients)
	start := p.current
	p.mu.Unlock()

	if count == 0 {
		return errors.New("no wallet RPC endpoint configured")
	}

	var lastErr error
	for i := 0; i < count; i++ {
		idx := (start + i) % count

		client, err := p.client(ctx, idx)
		if err != nil {
			lastErr = err
			continue
		}

		err = client.CallContext(ctx, result, method)
		if err == nil {
			p.setCurrent(idx)
			return nil
		}

		var rpcErr rpc.Error
		if errors.As(err, &rpcErr) {
			// the wallet answered, do not fail over
			p.setCurrent(idx)
			return err
		}

		if ctx.Err() != nil {
			return errors.Wrapf(err, "failed to call %s", method)
		}

		log.Warn().
			Str("url", p.urls[idx]).
			Str("method", method).
			Err(err).
			Msg("Wallet RPC call failed, trying next endpoint")
		lastErr = err
	}

	return errors.Wrapf(lastErr, "failed to call %s on any endpoint", method)
}

// client returns the dialed client at idx, dialing it again if the first attempt failed.
func (p *RPCProvider) client(ctx context.Context, idx int) (*rpc.Client, error) {
	p.mu.Lock()
	client := p.clients[idx]
	p.mu.Unlock()

	if client != nil {
		return client, nil
	}

	client, err := rpc.DialContext(ctx, p.urls[idx])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to dial %s", p.urls[idx])
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.clients[idx] != nil {
		client.Close()
		return p.clients[idx], nil
	}
	p.clients[idx] = client

	log.Info().Str("url", p.urls[idx]).Msg("Reconnected to wallet RPC endpoint")
	return client, nil
}

func (p *RPCProvider) setCurrent(idx int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = idx
}

// SubscribeAccountsChanged starts polling with the first handler and stops with the last one.
func (p *RPCProvider) SubscribeAccountsChanged(handler AccountsChangedHandler) func() {
	p.watchMu.Lock()
	defer p.watchMu.Unlock()

	id := p.nextHandler
	p.nextHandler++
	p.handlers[id] = handler

	if p.stopWatching == nil {
		ctx, cancel := context.WithCancel(context.Background())
		p.stopWatching = cancel
		go p.watch(ctx)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			p.watchMu.Lock()
			defer p.watchMu.Unlock()

			delete(p.handlers, id)
			if len(p.handlers) == 0 && p.stopWatching != nil {
				p.stopWatching()
				p.stopWatching = nil
			}
		})
	}
}

func (p *RPCProvider) watch(ctx context.Context) {
	ticker := time.NewTicker(p.pollInterval)
	defer ticker.Stop()

	var (
		known    []string
		baseline bool
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		callCtx, cancel := context.WithTimeout(ctx, p.pollInterval)
		accounts, err := p.Accounts(callCtx)
		cancel()
		if err != nil {
			if ctx.Err() == nil {
				log.Debug().Err(err).Msg("Failed to poll wallet accounts")
			}
			continue
		}

		if baseline && slices.Equal(known, accounts) {
			continue
		}

		first := !baseline
		known = accounts
		baseline = true
		if first {
			continue
		}

		p.emit(accounts)
	}
}

func (p *RPCProvider) emit(accounts []string) {
	p.watchMu.Lock()
	handlers := make([]AccountsChangedHandler, 0, len(p.handlers))
	for _, h := range p.handlers {
		handlers = append(handlers, h)
	}
	p.watchMu.Unlock()

	log.Debug().Int("accounts", len(accounts)).Msg("Wallet accounts changed")

	for _, h := range handlers {
		h(slices.Clone(accounts))
	}
}

// Close stops polling and closes every client.
func (p *RPCProvider) Close() {
	p.watchMu.Lock()
	if p.stopWatching != nil {
		p.stopWatching()
		p.stopWatching = nil
	}
	clear(p.handlers)
	p.watchMu.Unlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, client := range p.clients {
		if client != nil {
			client.Close()
		}
	}
}
