package db

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/types"
)

var ErrNestedUnitOfWork = errors.New("units of work do not nest")

type memoryTxKey struct{}

type memoryState struct {
	networkConfig *model.NetworkConfig
	stats         *model.StatsDocument
	authority     *model.AuthorityDocument
	accounts      map[types.Address]model.TokenAccount
	settlements   map[string]model.SettlementDocument
}

func (s *memoryState) clone() *memoryState {
	c := &memoryState{
		accounts:    maps.Clone(s.accounts),
		settlements: maps.Clone(s.settlements),
	}
	if s.networkConfig != nil {
		cfg := *s.networkConfig
		c.networkConfig = &cfg
	}
	if s.stats != nil {
		stats := *s.stats
		c.stats = &stats
	}
	if s.authority != nil {
		auth := *s.authority
		c.authority = &auth
	}
	return c
}

// MemoryDatabase keeps all state in process. A unit of work runs against a
// private copy of the committed state that replaces it only when fn succeeds,
// so reads outside the unit never see its writes. Units of work are
// serialised with each other and with writes made outside one.
type MemoryDatabase struct {
	txMu  sync.Mutex
	mu    sync.RWMutex
	state *memoryState
}

func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		state: &memoryState{
			accounts:    make(map[types.Address]model.TokenAccount),
			settlements: make(map[string]model.SettlementDocument),
		},
	}
}

func (m *MemoryDatabase) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryDatabase) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if workingState(ctx) != nil {
		return ErrNestedUnitOfWork
	}

	m.txMu.Lock()
	defer m.txMu.Unlock()

	m.mu.RLock()
	working := m.state.clone()
	m.mu.RUnlock()

	if err := fn(context.WithValue(ctx, memoryTxKey{}, working)); err != nil {
		return err
	}

	m.mu.Lock()
	m.state = working
	m.mu.Unlock()
	return nil
}

// workingState is the uncommitted state of the unit of work ctx belongs to.
func workingState(ctx context.Context) *memoryState {
	s, _ := ctx.Value(memoryTxKey{}).(*memoryState)
	return s
}

// write applies f to the working state inside a unit of work, otherwise to
// the committed state once no unit of work is running.
func (m *MemoryDatabase) write(ctx context.Context, f func(s *memoryState) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if working := workingState(ctx); working != nil {
		return f(working)
	}

	m.txMu.Lock()
	defer m.txMu.Unlock()
	m.mu.Lock()
	defer m.mu.Unlock()
	return f(m.state)
}

func (m *MemoryDatabase) read(ctx context.Context, f func(s *memoryState) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if working := workingState(ctx); working != nil {
		return f(working)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	return f(m.state)
}

func (m *MemoryDatabase) SaveNewNetworkConfig(ctx context.Context, cfg *model.NetworkConfig) error {
	return m.write(ctx, func(s *memoryState) error {
		if s.networkConfig != nil {
			return &DuplicateKeyError{
				Key:     networkConfigID,
				Message: "network config already exists",
			}
		}
		c := *cfg
		s.networkConfig = &c
		return nil
	})
}

func (m *MemoryDatabase) UpsertNetworkConfig(ctx context.Context, cfg *model.NetworkConfig) error {
	return m.write(ctx, func(s *memoryState) error {
		c := *cfg
		s.networkConfig = &c
		return nil
	})
}

func (m *MemoryDatabase) GetNetworkConfig(ctx context.Context) (*model.NetworkConfig, error) {
	var result *model.NetworkConfig
	err := m.read(ctx, func(s *memoryState) error {
		if s.networkConfig == nil {
			return &NotFoundError{
				Key:     networkConfigID,
				Message: "network config not found",
			}
		}
		c := *s.networkConfig
		result = &c
		return nil
	})
	return result, err
}

func (m *MemoryDatabase) SaveNewStats(ctx context.Context, stats *model.StatsDocument) error {
	return m.write(ctx, func(s *memoryState) error {
		if s.stats != nil {
			return &DuplicateKeyError{
				Key:     statsID,
				Message: "stats already exist",
			}
		}
		c := *stats
		c.ID = statsID
		c.LastUpdated = time.Now().Unix()
		s.stats = &c
		return nil
	})
}

func (m *MemoryDatabase) UpdateStats(ctx context.Context, stats *model.StatsDocument) error {
	return m.write(ctx, func(s *memoryState) error {
		if s.stats == nil {
			return &NotFoundError{
				Key:     statsID,
				Message: "stats not found",
			}
		}
		s.stats.AmountMoved = stats.AmountMoved
		s.stats.AmountRewardedSender = stats.AmountRewardedSender
		s.stats.AmountRewardedRecipient = stats.AmountRewardedRecipient
		s.stats.LastUpdated = time.Now().Unix()
		return nil
	})
}

func (m *MemoryDatabase) GetStats(ctx context.Context) (*model.StatsDocument, error) {
	var result *model.StatsDocument
	err := m.read(ctx, func(s *memoryState) error {
		if s.stats == nil {
			return &NotFoundError{
				Key:     statsID,
				Message: "stats not found",
			}
		}
		c := *s.stats
		result = &c
		return nil
	})
	return result, err
}

func (m *MemoryDatabase) SaveNewAuthority(ctx context.Context, doc *model.AuthorityDocument) error {
	return m.write(ctx, func(s *memoryState) error {
		if s.authority != nil {
			return &DuplicateKeyError{
				Key:     authorityID,
				Message: "authority already exists",
			}
		}
		c := *doc
		c.ID = authorityID
		s.authority = &c
		return nil
	})
}

func (m *MemoryDatabase) GetAuthority(ctx context.Context) (*model.AuthorityDocument, error) {
	var result *model.AuthorityDocument
	err := m.read(ctx, func(s *memoryState) error {
		if s.authority == nil {
			return &NotFoundError{
				Key:     authorityID,
				Message: "authority not found",
			}
		}
		c := *s.authority
		result = &c
		return nil
	})
	return result, err
}

func (m *MemoryDatabase) SaveNewTokenAccount(ctx context.Context, account *model.TokenAccount) error {
	return m.write(ctx, func(s *memoryState) error {
		if _, ok := s.accounts[account.Address]; ok {
			return &DuplicateKeyError{
				Key:     account.Address.String(),
				Message: "token account already exists",
			}
		}
		s.accounts[account.Address] = *account
		return nil
	})
}

func (m *MemoryDatabase) GetTokenAccount(ctx context.Context, address types.Address) (*model.TokenAccount, error) {
	var result *model.TokenAccount
	err := m.read(ctx, func(s *memoryState) error {
		account, ok := s.accounts[address]
		if !ok {
			return &NotFoundError{
				Key:     address.String(),
				Message: fmt.Sprintf("token account %s not found", address),
			}
		}
		result = &account
		return nil
	})
	return result, err
}

func (m *MemoryDatabase) GetTokenAccountsByOwner(ctx context.Context, owner types.Address) ([]*model.TokenAccount, error) {
	var result []*model.TokenAccount
	err := m.read(ctx, func(s *memoryState) error {
		for _, account := range s.accounts {
			if account.Owner == owner {
				result = append(result, &account)
			}
		}
		return nil
	})
	sort.Slice(result, func(i, j int) bool {
		return result[i].Address.String() < result[j].Address.String()
	})
	return result, err
}

func (m *MemoryDatabase) UpdateTokenAccountBalance(ctx context.Context, address types.Address, balance uint64) error {
	return m.write(ctx, func(s *memoryState) error {
		account, ok := s.accounts[address]
		if !ok {
			return &NotFoundError{
				Key:     address.String(),
				Message: fmt.Sprintf("token account %s not found", address),
			}
		}
		account.Balance = balance
		s.accounts[address] = account
		return nil
	})
}

func (m *MemoryDatabase) SaveSettlement(ctx context.Context, doc *model.SettlementDocument) error {
	return m.write(ctx, func(s *memoryState) error {
		if _, ok := s.settlements[doc.ID]; ok {
			return &DuplicateKeyError{
				Key:     doc.ID,
				Message: "settlement already exists",
			}
		}
		s.settlements[doc.ID] = *doc
		return nil
	})
}

func (m *MemoryDatabase) GetSettlement(ctx context.Context, id string) (*model.SettlementDocument, error) {
	var result *model.SettlementDocument
	err := m.read(ctx, func(s *memoryState) error {
		doc, ok := s.settlements[id]
		if !ok {
			return &NotFoundError{
				Key:     id,
				Message: "settlement not found",
			}
		}
		result = &doc
		return nil
	})
	return result, err
}
