package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gustavopprado/sistema-reservas/internal/config"
	"github.com/gustavopprado/sistema-reservas/internal/connect"
	"github.com/gustavopprado/sistema-reservas/internal/models"
	"github.com/gustavopprado/sistema-reservas/internal/services"
	"github.com/joho/godotenv"
)

// The organization's meeting rooms. Rooms are immutable once seeded; edit
// this list and re-run against an empty collection to change them.
var rooms = []*models.Room{
	{
		Name:      "Administrative Meeting Room",
		Capacity:  8,
		Location:  "Administrative",
		Equipment: []string{"TV", "Air Conditioning", "Webcam (with microphone)", "Computer"},
	},
	{
		Name:      "Industrial Meeting Room",
		Capacity:  10,
		Location:  "Industrial",
		Equipment: []string{"TV", "Table Microphone", "Webcam"},
	},
	{
		Name:      "Training Room",
		Capacity:  30,
		Location:  "Industrial",
		Equipment: []string{"Interactive Screen", "Microphone and Camera", "Sound System", "Air Conditioning"},
	},
	{
		Name:      "Engineering Meeting Room",
		Capacity:  10,
		Location:  "Factory",
		Equipment: []string{"TV", "Table Microphone", "Webcam", "Air Conditioning"},
	},
	{
		Name:      "Events Hall",
		Capacity:  80,
		Location:  "Parking Lot",
		Equipment: []string{"LED Panel", "Air Conditioning", "Full Kitchen", "Sound System", "Restrooms", "Barbecue Area"},
	},
}

func main() {
	_ = godotenv.Load(".env.local")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if _, err := config.LoadConfig(); err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	mongoClient, err := connect.MongoDBConnect()
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := connect.MongoDBDisconnect(); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	now := time.Now()
	for _, room := range rooms {
		room.CreatedAt = now
	}

	roomService := services.NewRoomService(models.MongodbNewRepo(mongoClient))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	inserted, err := roomService.SeedRooms(ctx, rooms)
	if err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	if inserted == 0 {
		logger.Info("Rooms collection already populated, nothing to do")
		return
	}
	logger.Info("Rooms seeded successfully", "count", inserted)
}
