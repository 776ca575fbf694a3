package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"icrrus-backend/models"
	"icrrus-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// migrationOrder lists every table in parent->child order so AutoMigrate can
// create foreign keys without forward references.
func migrationOrder() []interface{} {
	return []interface{}{
		&models.Office{},
		&models.Department{},
		&models.User{},
		&models.Service{},
		&models.DepartmentService{},
		&models.Counter{},
		&models.ServiceQueueEntry{},
		&models.QueueTicket{},
		&models.Room{},
		&models.Booking{},
		&models.Reservation{},
		&models.Equipment{},
		&models.BorrowingLog{},
		&models.MaintenanceLog{},
		&models.MaintenanceReport{},
		&models.Payment{},
		&models.OtpLog{},
	}
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "admin123")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "icrrus_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}
	DB = db

	return Migrate(DB)
}

// Migrate applies the schema and seeds baseline records. FORCE_SYNC=true wipes
// every table first, matching the resync script the mobile team relies on
// after a schema change.
func Migrate(db *gorm.DB) error {
	tables := migrationOrder()

	if strings.EqualFold(utils.EnvOrDefault("FORCE_SYNC", "false"), "true") {
		log.Println("FORCE_SYNC enabled: dropping all tables")
		for i := len(tables) - 1; i >= 0; i-- {
			if err := db.Migrator().DropTable(tables[i]); err != nil {
				return err
			}
		}
	}

	if err := db.AutoMigrate(tables...); err != nil {
		return err
	}

	if strings.EqualFold(utils.EnvOrDefault("SEED_ON_BOOT", "true"), "true") {
		SeedDatabase(db)
	}
	return nil
}

func hashOrEmpty(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: failed to hash seed password: %v", err)
		return ""
	}
	return string(hash)
}

func strPtr(s string) *string { return &s }

// SeedDatabase inserts the baseline demo records when their tables are empty.
func SeedDatabase(db *gorm.DB) {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount == 0 {
		users := []models.User{
			{
				FullName:     "Peter Parker",
				Email:        "student@itso.edu",
				Role:         models.RoleStudent,
				SchoolID:     strPtr("2021-10001"),
				PasswordHash: hashOrEmpty("student123"),
				IsActive:     true,
			},
			{
				FullName:     "Wanda Maximoff",
				Email:        "librarian@itso.edu",
				Role:         models.RoleLibrarian,
				SchoolID:     strPtr("LIB-9001"),
				PasswordHash: hashOrEmpty("librarian123"),
				IsActive:     true,
			},
		}
		if err := db.Create(&users).Error; err != nil {
			log.Printf("warning: failed to seed users: %v", err)
		} else {
			log.Println("Users seeded")
		}
	}

	var roomCount int64
	db.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{Name: "Library Discussion Room A", Capacity: 6, Location: "LIBRARY", Status: models.RoomAvailable},
			{Name: "IT Computer Lab 102", Capacity: 40, Location: "FACILITY", Status: models.RoomAvailable},
		}
		if err := db.Create(&rooms).Error; err != nil {
			log.Printf("warning: failed to seed rooms: %v", err)
		} else {
			log.Println("Rooms seeded")
		}
	}

	var bookingCount int64
	db.Model(&models.Booking{}).Count(&bookingCount)
	if bookingCount == 0 {
		var user models.User
		var room models.Room
		if err := db.First(&user).Error; err != nil {
			return
		}
		if err := db.First(&room).Error; err != nil {
			return
		}
		now := time.Now().UTC()
		booking := models.Booking{
			UserID:       user.ID,
			RoomID:       room.ID,
			StartTime:    now,
			EndTime:      now.Add(2 * time.Hour),
			Purpose:      "Initial Seed Test",
			StudentCount: 5,
			Status:       models.BookingApproved,
			QRCodeToken:  "SEED-TEST-001",
		}
		if err := db.Create(&booking).Error; err != nil {
			log.Printf("warning: failed to seed booking: %v", err)
		} else {
			log.Println("Test booking seeded")
		}
	}
}
