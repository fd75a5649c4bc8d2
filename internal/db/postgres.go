package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/sefakor20/kingdomvitals-app-sub000/internal/domain"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/envutil"
	"github.com/sefakor20/kingdomvitals-app-sub000/internal/platform/logger"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

// New connects using DB_DRIVER: "postgres" (default) or "sqlite" for local
// development and CI.
func New(log *logger.Logger) (*Service, error) {
	serviceLog := log.With("service", "DB")

	driver := envutil.String("DB_DRIVER", "postgres")

	var (
		db  *gorm.DB
		err error
	)
	cfg := &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	}

	switch driver {
	case "sqlite":
		path := envutil.String("SQLITE_PATH", "kingdomvitals.db")
		db, err = gorm.Open(sqlite.Open(path), cfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	default:
		host := envutil.String("POSTGRES_HOST", "localhost")
		port := envutil.String("POSTGRES_PORT", "5432")
		user := envutil.String("POSTGRES_USER", "postgres")
		password := envutil.String("POSTGRES_PASSWORD", "")
		name := envutil.String("POSTGRES_NAME", "kingdomvitals")

		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
		db, err = gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
	}

	serviceLog.Info("database connected", "driver", driver)
	return &Service{db: db, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) AutoMigrateAll() error {
	s.log.Info("running auto migration")
	return s.db.AutoMigrate(
		&domain.Member{},
		&domain.Household{},
		&domain.Cluster{},

		&domain.AttendanceRecord{},
		&domain.Donation{},
		&domain.MessageDeliveryLog{},
		&domain.PrayerRequest{},
		&domain.GroupMeeting{},
		&domain.GroupMeetingAttendance{},

		&domain.Alert{},
		&domain.AlertSetting{},
		&domain.Forecast{},

		&domain.RosterPool{},
		&domain.PoolMember{},
		&domain.RosterAssignment{},
	)
}
