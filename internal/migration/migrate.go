package migration

import (
	auditdomain "github.com/wisphub/netdesk/internal/audit/domain"
	authdomain "github.com/wisphub/netdesk/internal/auth/domain"
	cashflowdomain "github.com/wisphub/netdesk/internal/cashflow/domain"
	citydomain "github.com/wisphub/netdesk/internal/city/domain"
	customerdomain "github.com/wisphub/netdesk/internal/customer/domain"
	"gorm.io/gorm"
)

// Run migrates the schema for every persisted model. Safe to call on every
// startup; gorm only applies the diff.
func Run(db *gorm.DB) error {
	return db.AutoMigrate(
		&authdomain.User{},
		&citydomain.City{},
		&customerdomain.Customer{},
		&cashflowdomain.Entry{},
		&auditdomain.AuditLog{},
	)
}
