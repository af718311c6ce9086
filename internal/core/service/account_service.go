package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ebank/backoffice/internal/core/domain"
	"github.com/ebank/backoffice/internal/core/ports"
	"github.com/ebank/backoffice/internal/infrastructure/metrics"
)

type accountService struct {
	repo  ports.BankAccountRepository
	cache ports.RIBCache
	log   zerolog.Logger
}

// NewAccountService returns an AccountService that consults cache before repo.
// cache may be nil.
func NewAccountService(repo ports.BankAccountRepository, cache ports.RIBCache, log zerolog.Logger) ports.AccountService {
	return &accountService{repo: repo, cache: cache, log: log}
}

// Exists reports whether a bank account with the given RIB is on file.
// Surrounding whitespace is ignored. Cache failures are logged and the store is asked instead. Accounts are never
// deleted here, so a cached positive answer cannot go stale; negative answers
// always go to the store.
func (s *accountService) Exists(ctx context.Context, rib string) (bool, error) {
	rib = strings.TrimSpace(rib)
	if rib == "" {
		return false, domain.ErrInvalidRIB
	}

	if s.cache != nil {
		hit, err := s.cache.Has(ctx, rib)
		switch {
		case err != nil:
			metrics.RIBLookupsTotal.WithLabelValues("cache_error").Inc()
			s.log.Warn().Err(err).Str("rib", rib).Msg("rib cache read failed, querying store")
		case hit:
			metrics.RIBLookupsTotal.WithLabelValues("hit").Inc()
			return true, nil
		}
	}

	exists, err := s.repo.ExistsByRIB(ctx, rib)
	if err != nil {
		return false, fmt.Errorf("exists by rib: %w", err)
	}
	metrics.RIBLookupsTotal.WithLabelValues("miss").Inc()

	if exists && s.cache != nil {
		if err := s.cache.MarkExists(ctx, rib); err != nil {
			s.log.Warn().Err(err).Str("rib", rib).Msg("rib cache write failed")
		}
	}

	return exists, nil
}
