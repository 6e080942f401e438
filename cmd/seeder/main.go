package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/tourney-hq/tourney-tracker/internal/database"
	"github.com/tourney-hq/tourney-tracker/internal/league"
	"github.com/tourney-hq/tourney-tracker/internal/scoring"
	"github.com/tourney-hq/tourney-tracker/internal/settings"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "tracker.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

var seedTeams = []struct {
	name    string
	players []string
}{
	{"Thunder", []string{"Alice", "Bob"}},
	{"Avalanche", []string{"Carol", "Dave"}},
	{"Wildcats", []string{"Erin", "Frank"}},
	{"Night Owls", []string{"Grace", "Henry"}},
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], "", "", cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	log.Info("Successfully connected to the database.", "db", cfg["DB_NAME"])

	store := league.New(db)
	settingsStore := settings.New(db)

	leagueName := "Pro League"
	season := "Season 4"
	if _, err := settingsStore.Update(settings.Update{LeagueName: &leagueName, Season: &season}); err != nil {
		log.Fatalf("Failed to seed settings: %s", err)
	}

	teamIDs := make([]string, 0, len(seedTeams))
	for _, seed := range seedTeams {
		team, err := store.CreateTeam(seed.name, seed.players, nil, nil)
		if err != nil {
			log.Fatalf("Failed to insert team %s: %s", seed.name, err)
		}
		teamIDs = append(teamIDs, team.ID)
	}
	if err := store.BackfillTeamIdentity(); err != nil {
		log.Fatalf("Failed to assign team colors: %s", err)
	}
	log.Info("Seeded teams.", "count", len(teamIDs))

	const numSessions = 3
	const gamesPerSession = 4
	startTime := time.Now()

	tables, err := settingsStore.ScoringTables()
	if err != nil {
		log.Fatalf("Failed to read scoring tables: %s", err)
	}

	for i := 0; i < numSessions; i++ {
		session, err := store.CreateSession(fmt.Sprintf("Session %d", i+1), teamIDs)
		if err != nil {
			log.Fatalf("Failed to create session: %s", err)
		}

		for j := 0; j < gamesPerSession; j++ {
			placements := make(map[string]int)
			roster := make(map[string][]string)
			order := rand.Perm(len(seedTeams))
			for pos, teamIdx := range order {
				seed := seedTeams[teamIdx]
				player := seed.players[rand.Intn(len(seed.players))]
				placements[scoring.ScopedKey(teamIDs[teamIdx], player)] = pos + 1
				roster[teamIDs[teamIdx]] = []string{player}
			}
			if _, err := store.AddGame(session.ID, fmt.Sprintf("Game %d", j+1), placements, roster, tables); err != nil {
				log.Fatalf("Failed to record game: %s", err)
			}
		}

		if rand.Intn(4) == 0 {
			offender := teamIDs[rand.Intn(len(teamIDs))]
			if _, err := store.AddPenalty(session.ID, offender, -1, "Late arrival"); err != nil {
				log.Fatalf("Failed to record penalty: %s", err)
			}
		}

		// Older sessions are closed so the leaderboard has data.
		if i < numSessions-1 {
			status := league.StatusCompleted
			if _, err := store.UpdateSession(session.ID, nil, &status); err != nil {
				log.Fatalf("Failed to complete session: %s", err)
			}
		}
		log.Info("Seeded session", "session", session.Name, "games", gamesPerSession)
	}

	duration := time.Since(startTime)
	log.Info("Successfully seeded demo data.", "duration", duration)
}
