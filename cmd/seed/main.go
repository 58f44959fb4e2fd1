// Dev utility: wipes the database, creates the test account and fills the
// leads collection with sample data.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Kotlang/leadsGo/appconfig"
	"github.com/Kotlang/leadsGo/db"
	"github.com/Kotlang/leadsGo/logger"
	"github.com/Kotlang/leadsGo/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const leadCount = 150

var firstNames = []string{"Aarav", "Meera", "Rohan", "Priya", "Kiran", "Anita", "Vikram", "Sana", "Dev", "Isha", "Arjun", "Nisha"}
var lastNames = []string{"Sharma", "Patel", "Reddy", "Iyer", "Khan", "Das", "Nair", "Gupta", "Singh", "Mehta", "Joshi", "Rao"}
var companies = []string{"GreenFields Agro", "Sunrise Traders", "BlueLeaf Organics", "Harvest Hub", "AgroLink", "FarmFresh Co", "TerraGrow", "CropCircle Ltd"}
var cities = []string{"Hyderabad", "Pune", "Bengaluru", "Chennai", "Nagpur", "Indore", "Jaipur", "Kochi"}
var states = []string{"Telangana", "Maharashtra", "Karnataka", "Tamil Nadu", "Madhya Pradesh", "Rajasthan", "Kerala"}

func main() {
	config, err := appconfig.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Setup(config.LogLevel); err != nil {
		panic(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	crmDb, err := db.Connect(ctx, config.MongoURI, config.MongoDatabase)
	if err != nil {
		logger.Fatal("Error connecting to mongo", zap.Error(err))
	}
	defer crmDb.Disconnect(ctx)

	if err := crmDb.Reset(ctx); err != nil {
		logger.Fatal("Error clearing collections", zap.Error(err))
	}
	if err := crmDb.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Error creating indexes", zap.Error(err))
	}
	logger.Info("Existing data cleared")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("Error hashing password", zap.Error(err))
	}

	testUser := &models.UserModel{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: string(hash),
	}
	if err := crmDb.Users().Save(ctx, testUser); err != nil {
		logger.Fatal("Error creating test user", zap.Error(err))
	}
	logger.Info("Test user created", zap.String("email", testUser.Email))

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := 0; i < leadCount; i++ {
		if err := crmDb.Leads().Save(ctx, sampleLead(rng, i)); err != nil {
			logger.Fatal("Error saving lead", zap.Error(err))
		}
	}
	logger.Info("Leads created", zap.Int("count", leadCount))
}

func sampleLead(rng *rand.Rand, i int) *models.LeadModel {
	firstName := pick(rng, firstNames)
	lastName := pick(rng, lastNames)

	score := rng.Intn(101)
	leadValue := float64(1000 + rng.Intn(49001))
	lastActivity := time.Now().UTC().Add(-time.Duration(rng.Intn(30*24)) * time.Hour)

	lead := models.NewLead()
	lead.FirstName = firstName
	lead.LastName = lastName
	lead.Company = pick(rng, companies)
	lead.City = pick(rng, cities)
	lead.State = pick(rng, states)
	lead.Email = fmt.Sprintf("%s.%s.%d@example.com", firstName, lastName, i)
	lead.Phone = fmt.Sprintf("+91%010d", rng.Int63n(10000000000))
	lead.Source = pick(rng, models.LeadSources)
	lead.Status = pick(rng, models.LeadStatuses)
	lead.Score = &score
	lead.LeadValue = &leadValue
	lead.LastActivityAt = &lastActivity
	lead.IsQualified = rng.Intn(2) == 0
	return lead
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}
