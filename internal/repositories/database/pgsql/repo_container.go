package pgsql

import (
	portsrepo "github.com/SscSPs/car_market_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:           newPgxUserRepository(dbPool),
		ListingRepo:        newPgxListingRepository(dbPool),
		PremiumRequestRepo: newPgxPremiumRequestRepository(dbPool),
		SettingRepo:        newPgxSettingRepository(dbPool),
		PageViewRepo:       newPgxPageViewRepository(dbPool),
		ReportingRepo:      newReportingRepository(dbPool),
	}
}
