package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Marufhossain07/fit-sync-backend/internal/config"
	"github.com/Marufhossain07/fit-sync-backend/internal/handlers"
	"github.com/Marufhossain07/fit-sync-backend/internal/middleware"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
	"github.com/Marufhossain07/fit-sync-backend/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) error {
	userRepo := repository.NewUserRepository(db)
	trainerRepo := repository.NewTrainerRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	classRepo := repository.NewClassRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	forumRepo := repository.NewForumRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	subscriberRepo := repository.NewSubscriberRepository(db)

	userService := services.NewUserService(db, userRepo, trainerRepo)
	trainerService := services.NewTrainerService(db, trainerRepo, userRepo)
	bookingService := services.NewBookingService(db, slotRepo, trainerRepo, classRepo, paymentRepo)

	authHandler := handlers.NewAuthHandler(userService, userRepo, cfg.JWTSecret)
	trainerHandler := handlers.NewTrainerHandler(trainerService, trainerRepo)
	slotHandler := handlers.NewSlotHandler(bookingService, slotRepo)
	paymentHandler := handlers.NewPaymentHandler(bookingService)
	classHandler := handlers.NewClassHandler(classRepo)
	forumHandler := handlers.NewForumHandler(forumRepo, userRepo)
	reviewHandler := handlers.NewReviewHandler(reviewRepo)
	subscriberHandler := handlers.NewSubscriberHandler(subscriberRepo)
	statsHandler := handlers.NewStatsHandler(userRepo, trainerRepo, classRepo, paymentRepo, subscriberRepo)

	auth := middleware.AuthRequired(cfg.JWTSecret)
	admin := middleware.RequireAdmin(userRepo)
	trainer := middleware.RequireTrainer(userRepo)

	// session + role directory
	app.Post("/jwt", authHandler.IssueToken)
	app.Post("/users", authHandler.RegisterUser)
	app.Patch("/user", auth, authHandler.UpdateName)
	app.Get("/users/admin/:email", auth, authHandler.CheckAdmin)
	app.Get("/from-users/trainer/:email", auth, authHandler.CheckTrainer)

	// newsletter subscribers
	app.Post("/subscribe", subscriberHandler.Subscribe)
	app.Get("/subscribe", auth, admin, subscriberHandler.List)
	app.Delete("/subscribe/:id", auth, admin, subscriberHandler.Delete)

	// class catalog
	app.Post("/add-class", auth, admin, classHandler.Create)
	app.Get("/classes", classHandler.List)
	app.Get("/all-classes", classHandler.Search)
	app.Get("/classes-count", classHandler.Count)
	app.Get("/featured-classes", classHandler.Featured)

	// trainer application workflow. Details must be registered before the
	// :name route so /trainer/details/... does not match it.
	app.Post("/trainer", auth, trainerHandler.Apply)
	app.Put("/trainer/feedback", auth, admin, trainerHandler.Reject)
	app.Get("/trainer/details/:email", trainerHandler.Details)
	app.Get("/trainer/:name", trainerHandler.ListBySkill)
	app.Get("/trainer", trainerHandler.ListAccepted)
	app.Get("/all-trainer", trainerHandler.ListAccepted)
	app.Delete("/trainer", auth, admin, trainerHandler.Revoke)
	app.Get("/applied", auth, admin, trainerHandler.ListApplied)
	app.Get("/applied/:id", auth, admin, trainerHandler.AppliedByID)
	app.Patch("/applied/:email", auth, admin, trainerHandler.Approve)
	app.Get("/activity-log", auth, trainerHandler.ActivityLog)

	// slots and bookings
	app.Post("/slot", auth, trainer, slotHandler.Publish)
	app.Get("/slot/:email", auth, slotHandler.ListByTrainer)
	app.Get("/available-slots/:email", slotHandler.ListAvailable)
	app.Get("/book-slot/:id", auth, slotHandler.GetByID)
	app.Get("/booking/:id", auth, slotHandler.GetByID)
	app.Delete("/slot/:id/:email", auth, trainer, slotHandler.Withdraw)

	// payments
	app.Post("/payment", auth, paymentHandler.Record)

	// community forum
	app.Post("/forum", auth, forumHandler.Create)
	app.Get("/forum", forumHandler.List)
	app.Patch("/forum/upvote/:id", auth, forumHandler.Upvote)
	app.Patch("/forum/downvote/:id", auth, forumHandler.Downvote)

	// reviews
	app.Post("/review", auth, reviewHandler.Create)
	app.Get("/review", reviewHandler.List)

	// admin dashboard
	app.Get("/balance/stats", auth, admin, statsHandler.BalanceStats)

	return registerDocsRoutes(app, cfg)
}
