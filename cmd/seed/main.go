package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"context"

	"salonbook/internal/config"
	"salonbook/internal/database"
	"salonbook/internal/domain"
	jwtsvc "salonbook/internal/pkg/jwt"
	"salonbook/internal/repository"

	"github.com/google/uuid"
)

// Seeds a demo salon: two customers, three stylists, a handful of bookings
// and ratings. Prints dev tokens for poking the API by hand.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed: ", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed: ", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM ratings")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM stylists")
	db.Exec("DELETE FROM customers")

	ctx := context.Background()
	customers := repository.NewCustomerRepository(db)

	log.Println("Creating customers...")
	admin := domain.Customer{
		Name:  "Salon Operator",
		Email: "operator@salonbook.dev",
		Role:  domain.RoleAdmin,
	}
	if err := customers.Create(ctx, &admin); err != nil {
		log.Fatal("seed admin: ", err)
	}

	customer := domain.Customer{
		Name:  "Asel Nurlanova",
		Email: "asel@example.com",
		Phone: "+7 777 123 4567",
		Role:  domain.RoleCustomer,
	}
	if err := customers.Create(ctx, &customer); err != nil {
		log.Fatal("seed customer: ", err)
	}

	log.Println("Creating stylists...")
	stylists := []domain.Stylist{
		{
			Name:        "Aliya Serikova",
			Email:       "aliya@salonbook.dev",
			Bio:         "Colorist with 8 years behind the chair.",
			Specialties: []string{"coloring", "balayage"},
			Services: []domain.Service{
				{Name: "Haircut", Price: 50, DurationMinutes: 60},
				{Name: "Coloring", Price: 120, DurationMinutes: 120, Description: "Full head"},
			},
			Availability: domain.Availability{
				Days:  []string{"Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
				Hours: domain.HourRange{Start: "11:00", End: "23:00"},
			},
			Location: "Downtown",
			IsActive: true,
		},
		{
			Name:        "Dana Mukhtarova",
			Email:       "dana@salonbook.dev",
			Bio:         "Bridal and event styling.",
			Specialties: []string{"updo", "bridal"},
			Services: []domain.Service{
				{Name: "Updo", Price: 80, DurationMinutes: 90},
				{Name: "Blowout", Price: 40, DurationMinutes: 45},
			},
			Availability: domain.Availability{
				Days:  []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
				Hours: domain.HourRange{Start: "09:00", End: "18:00"},
			},
			Location: "Eastside",
			IsActive: true,
		},
		{
			Name:        "Yerlan Abenov",
			Email:       "yerlan@salonbook.dev",
			Bio:         "Barbering, fades and beard work.",
			Specialties: []string{"barbering"},
			Services: []domain.Service{
				{Name: "Fade", Price: 35, DurationMinutes: 60},
				{Name: "Beard Trim", Price: 20, DurationMinutes: 30},
			},
			Availability: domain.Availability{
				Days:  []string{"Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
				Hours: domain.HourRange{Start: "10:00", End: "20:00"},
			},
			Location: "Downtown",
			IsActive: true,
		},
	}
	for i := range stylists {
		db.Create(&stylists[i])
	}

	log.Println("Creating bookings...")
	// Next Wednesday, so the demo booking is always in the future.
	nextWed := time.Now().AddDate(0, 0, 1)
	for nextWed.Weekday() != time.Wednesday {
		nextWed = nextWed.AddDate(0, 0, 1)
	}

	booking := domain.Booking{
		Reference:     uuid.NewString(),
		StylistID:     stylists[0].ID,
		CustomerID:    &customer.ID,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
		ServiceName:   "Haircut",
		Date:          nextWed.Format("2006-01-02"),
		Time:          "14:00",
		Status:        domain.BookingConfirmed,
	}
	db.Create(&booking)

	log.Println("Creating ratings...")
	ratings := []domain.Rating{
		{StylistID: stylists[0].ID, CustomerID: customer.ID, Value: 5},
		{StylistID: stylists[0].ID, CustomerID: domain.GuestCustomerID, Value: 4},
	}
	for i := range ratings {
		db.Create(&ratings[i])
	}
	// Keep the stored aggregate honest with what was just inserted.
	db.Model(&domain.Stylist{}).Where("id = ?", stylists[0].ID).
		Updates(map[string]any{"rating": 4.5, "review_count": 2})

	j := jwtsvc.New(cfg.JWTSecret, 7*24*time.Hour)
	adminToken, err := j.GenerateToken(admin.ID, string(admin.Role))
	if err != nil {
		log.Fatal("token: ", err)
	}
	customerToken, err := j.GenerateToken(customer.ID, string(customer.Role))
	if err != nil {
		log.Fatal("token: ", err)
	}

	log.Println("Seed completed.")
	fmt.Fprintf(os.Stdout, "\nDemo booking reference: %s\n", booking.Reference)
	fmt.Fprintf(os.Stdout, "Operator token:\n  %s\n", adminToken)
	fmt.Fprintf(os.Stdout, "Customer token:\n  %s\n", customerToken)
}
