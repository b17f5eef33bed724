// Command seed populates the database with synthetic smart-home demo
// data: users with plausible dwelling sizes, a device catalog across
// the common categories, and usage logs following a rough diurnal
// pattern (with a sprinkling of off-hours sessions so the anomaly
// scanner has something to find).
package main

import (
	"flag"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"smarthome-analytics-backend/config"
	"smarthome-analytics-backend/internal/db"
	"smarthome-analytics-backend/internal/model"
)

var deviceCatalog = []struct {
	Name string
	Type string
}{
	{"Living Room Lamp", "light"},
	{"Bedroom Lamp", "light"},
	{"Front Door Lock", "door_lock"},
	{"Garage Camera", "security_camera"},
	{"Hallway Camera", "security_camera"},
	{"Thermostat", "thermostat"},
	{"Smart TV", "media"},
	{"Robot Vacuum", "appliance"},
	{"Washing Machine", "appliance"},
	{"Kitchen Speaker", "media"},
}

func main() {
	users := flag.Int("users", 20, "number of users to create")
	logs := flag.Int("logs", 1000, "number of usage logs to create")
	days := flag.Int("days", 30, "number of past days to spread logs over")
	seed := flag.Int64("seed", 0, "random seed (0 uses current time)")
	flag.Parse()

	if *seed != 0 {
		gofakeit.Seed(*seed)
		rand.Seed(*seed)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	log.Printf("Seeding %d users...", *users)
	userRows := make([]model.User, *users)
	for i := range userRows {
		userRows[i] = model.User{
			Name: gofakeit.Name(),
			// Dwelling sizes roughly 40-220 m², skewed toward mid-size.
			HouseArea: math.Round((40+rand.Float64()*90+rand.Float64()*90)*10) / 10,
		}
	}
	if err := gormDB.Create(&userRows).Error; err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}

	log.Printf("Seeding %d devices...", len(deviceCatalog))
	deviceRows := make([]model.Device, len(deviceCatalog))
	for i, d := range deviceCatalog {
		deviceRows[i] = model.Device{Name: d.Name, Type: d.Type}
	}
	if err := gormDB.Create(&deviceRows).Error; err != nil {
		log.Fatalf("failed to seed devices: %v", err)
	}

	log.Printf("Seeding %d usage logs across %d days...", *logs, *days)
	now := time.Now().UTC().Truncate(time.Hour)
	logRows := make([]model.UsageLog, *logs)
	for i := range logRows {
		user := userRows[rand.Intn(len(userRows))]
		device := deviceRows[rand.Intn(len(deviceRows))]

		day := rand.Intn(*days)
		start := now.AddDate(0, 0, -day).Add(-time.Duration(rand.Intn(60)) * time.Minute)
		start = time.Date(start.Year(), start.Month(), start.Day(), usageHour(), rand.Intn(60), 0, 0, time.UTC)

		// Most sessions are short; a few run long enough to trip the
		// long-session rule.
		duration := time.Duration(5+rand.Intn(40)) * time.Minute
		if rand.Float64() < 0.05 {
			duration = time.Duration(70+rand.Intn(120)) * time.Minute
		}

		logRows[i] = model.UsageLog{
			UserID:     user.ID,
			DeviceID:   device.ID,
			StartTime:  start,
			FinishTime: start.Add(duration),
		}
	}
	if err := gormDB.CreateInBatches(&logRows, 200).Error; err != nil {
		log.Fatalf("failed to seed usage logs: %v", err)
	}

	log.Printf("Done: %d users, %d devices, %d usage logs", len(userRows), len(deviceRows), len(logRows))
}

// usageHour draws an hour of day weighted toward waking hours, with a
// small chance of a night-time session.
func usageHour() int {
	if rand.Float64() < 0.06 {
		return rand.Intn(5) // 00:00-04:59
	}
	// Peak in the morning and evening.
	if rand.Float64() < 0.5 {
		return 6 + rand.Intn(5) // 06:00-10:59
	}
	return 16 + rand.Intn(7) // 16:00-22:59
}
