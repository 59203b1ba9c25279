package container

import (
	"log/slog"

	"github.com/gustavopprado/sistema-reservas/internal/config"
	"github.com/gustavopprado/sistema-reservas/internal/models"
	"github.com/gustavopprado/sistema-reservas/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container holds all application dependencies
type Container struct {
	Logger         *slog.Logger
	Config         *config.Config
	MongoDBClient  *mongo.Client
	RoomService    *services.RoomService
	BookingService *services.BookingService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	logger *slog.Logger,
	cfg *config.Config,
	mongoDBClient *mongo.Client,
	mailer services.Mailer,
	calendar services.EventCreator,
) *Container {
	repo := models.MongodbNewRepo(mongoDBClient)
	policy := services.NewPolicy(cfg.AdminEmail, cfg.RestrictedRoomIDs)

	roomService := services.NewRoomService(repo)
	bookingService := services.NewBookingService(repo, repo, policy, mailer, calendar, logger)

	return &Container{
		Logger:         logger,
		Config:         cfg,
		MongoDBClient:  mongoDBClient,
		RoomService:    roomService,
		BookingService: bookingService,
	}
}
