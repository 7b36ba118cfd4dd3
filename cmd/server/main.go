package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"pawhaven/internal/api"
	"pawhaven/internal/auth"
	"pawhaven/internal/repository"
	"pawhaven/internal/service"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v82"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	userRepo := repository.NewUserRepository(db)
	petRepo := repository.NewPetRepository(db)
	adoptionRepo := repository.NewAdoptionRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	rescueRepo := repository.NewRescueRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	chatRepo := repository.NewChatRepository(db)
	jobRepo := repository.NewJobRepository(db)

	tokenStore := service.NewRedisTokenStore(redisClient)
	senderSvc := service.NewSenderService()
	stripeSvc := service.NewStripeService()

	authSvc := service.NewAuthService(userRepo, tokenStore, jwtSecret)
	petSvc := service.NewPetService(petRepo)
	adoptionSvc := service.NewAdoptionService(adoptionRepo, petRepo, userRepo, senderSvc)
	appointmentSvc := service.NewAppointmentService(appointmentRepo, doctorRepo, senderSvc)
	storeSvc := service.NewStoreService(storeRepo, orderRepo, userRepo, stripeSvc, senderSvc)
	rescueSvc := service.NewRescueService(rescueRepo, senderSvc)
	blogSvc := service.NewBlogService(blogRepo)
	wishlistSvc := service.NewWishlistService(wishlistRepo, petRepo, storeRepo)
	chatSvc := service.NewChatService(chatRepo)
	jobSvc := service.NewJobService(jobRepo)

	authHandler := api.NewAuthHandler(authSvc)
	petHandler := api.NewPetHandler(petSvc)
	adoptionHandler := api.NewAdoptionHandler(adoptionSvc)
	appointmentHandler := api.NewAppointmentHandler(appointmentSvc)
	storeHandler := api.NewStoreHandler(storeSvc)
	stripeHandler := api.NewStripeWebhookHandler(os.Getenv("STRIPE_WEBHOOK_SECRET"), storeSvc, stripeSvc)
	rescueHandler := api.NewRescueHandler(rescueSvc)
	blogHandler := api.NewBlogHandler(blogSvc)
	wishlistHandler := api.NewWishlistHandler(wishlistSvc)
	chatHandler := api.NewChatHandler(chatSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/pets", petHandler.ListPets).Methods("GET")
	r.HandleFunc("/api/pets/nearby", petHandler.NearbyPets).Methods("GET")
	r.HandleFunc("/api/pets/{id}", petHandler.GetPet).Methods("GET")
	r.HandleFunc("/api/doctors", appointmentHandler.ListDoctors).Methods("GET")
	r.HandleFunc("/api/doctors/{id}", appointmentHandler.GetDoctor).Methods("GET")
	r.HandleFunc("/api/doctors/{id}/slots", appointmentHandler.GetDoctorSlots).Methods("GET")
	r.HandleFunc("/api/products", storeHandler.ListProducts).Methods("GET")
	r.HandleFunc("/api/products/{id}", storeHandler.GetProduct).Methods("GET")
	r.HandleFunc("/api/posts", blogHandler.ListPosts).Methods("GET")
	r.HandleFunc("/api/posts/{slug}", blogHandler.GetPost).Methods("GET")
	r.HandleFunc("/api/events", blogHandler.ListEvents).Methods("GET")
	r.HandleFunc("/api/rescues", rescueHandler.Report).Methods("POST")
	r.HandleFunc("/api/rescues/{reference}", rescueHandler.GetReport).Methods("GET")
	r.HandleFunc("/api/stripe/webhook", stripeHandler.HandleWebhook).Methods("POST")

	// Authenticated endpoints
	user := r.PathPrefix("/api").Subrouter()
	user.Use(auth.Middleware(jwtSecret, tokenStore))
	user.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	user.HandleFunc("/auth/me", authHandler.GetProfile).Methods("GET")
	user.HandleFunc("/auth/me", authHandler.UpdateProfile).Methods("PUT")
	user.HandleFunc("/pets/{id}/adoptions", adoptionHandler.Apply).Methods("POST")
	user.HandleFunc("/adoptions", adoptionHandler.ListMine).Methods("GET")
	user.HandleFunc("/appointments", appointmentHandler.BookAppointment).Methods("POST")
	user.HandleFunc("/appointments", appointmentHandler.ListAppointments).Methods("GET")
	user.HandleFunc("/appointments/{code}", appointmentHandler.GetAppointment).Methods("GET")
	user.HandleFunc("/appointments/{code}", appointmentHandler.CancelAppointment).Methods("DELETE")
	user.HandleFunc("/cart", storeHandler.GetCart).Methods("GET")
	user.HandleFunc("/cart", storeHandler.AddToCart).Methods("POST")
	user.HandleFunc("/cart/{product_id}", storeHandler.RemoveFromCart).Methods("DELETE")
	user.HandleFunc("/cart", storeHandler.ClearCart).Methods("DELETE")
	user.HandleFunc("/checkout", storeHandler.Checkout).Methods("POST")
	user.HandleFunc("/orders", storeHandler.ListOrders).Methods("GET")
	user.HandleFunc("/orders/{code}", storeHandler.GetOrder).Methods("GET")
	user.HandleFunc("/orders/{code}", storeHandler.CancelOrder).Methods("DELETE")
	user.HandleFunc("/orders-by-session", stripeHandler.GetOrderBySessionIDHandler).Methods("GET")
	user.HandleFunc("/wishlist", wishlistHandler.List).Methods("GET")
	user.HandleFunc("/wishlist", wishlistHandler.Add).Methods("POST")
	user.HandleFunc("/wishlist/{item_type}/{item_id}", wishlistHandler.Remove).Methods("DELETE")
	user.HandleFunc("/chat", chatHandler.Ask).Methods("POST")
	user.HandleFunc("/chat/history", chatHandler.History).Methods("GET")

	// Doctor endpoints
	doctor := r.PathPrefix("/api/doctor").Subrouter()
	doctor.Use(auth.Middleware(jwtSecret, tokenStore), auth.RequireRole("doctor"))
	doctor.HandleFunc("/profile", appointmentHandler.GetDoctorProfile).Methods("GET")
	doctor.HandleFunc("/profile", appointmentHandler.UpdateDoctorProfile).Methods("PUT")

	// Admin endpoints
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.Middleware(jwtSecret, tokenStore), auth.RequireRole("admin"))
	admin.HandleFunc("/pets", petHandler.CreatePet).Methods("POST")
	admin.HandleFunc("/pets/{id}", petHandler.UpdatePet).Methods("PUT")
	admin.HandleFunc("/pets/{id}", petHandler.DeletePet).Methods("DELETE")
	admin.HandleFunc("/pets/{id}/adoptions", adoptionHandler.ListForPet).Methods("GET")
	admin.HandleFunc("/adoptions/{id}/approve", adoptionHandler.Approve).Methods("POST")
	admin.HandleFunc("/adoptions/{id}/reject", adoptionHandler.Reject).Methods("POST")
	admin.HandleFunc("/products", storeHandler.CreateProduct).Methods("POST")
	admin.HandleFunc("/products/{id}", storeHandler.UpdateProduct).Methods("PUT")
	admin.HandleFunc("/products/{id}", storeHandler.DeleteProduct).Methods("DELETE")
	admin.HandleFunc("/rescues", rescueHandler.ListReports).Methods("GET")
	admin.HandleFunc("/rescues/{reference}", rescueHandler.AdvanceReport).Methods("PUT")
	admin.HandleFunc("/posts", blogHandler.CreatePost).Methods("POST")
	admin.HandleFunc("/posts/{id}", blogHandler.UpdatePost).Methods("PUT")
	admin.HandleFunc("/posts/{id}", blogHandler.DeletePost).Methods("DELETE")
	admin.HandleFunc("/events", blogHandler.CreateEvent).Methods("POST")
	admin.HandleFunc("/events/{id}", blogHandler.DeleteEvent).Methods("DELETE")

	c := cron.New()
	c.AddFunc("*/10 * * * *", func() {
		if err := jobSvc.CompleteFinishedAppointments(); err != nil {
			log.Printf("ERROR in cron job CompleteFinishedAppointments: %v", err)
		}
	})
	c.AddFunc("0 * * * *", func() {
		if err := jobSvc.PurgeAbandonedOrders(); err != nil {
			log.Printf("ERROR in cron job PurgeAbandonedOrders: %v", err)
		}
	})
	c.Start()

	corsOrigin := os.Getenv("FRONTEND_URL")
	if corsOrigin == "" {
		corsOrigin = "*"
	}
	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{corsOrigin}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, cors(r)))
}
