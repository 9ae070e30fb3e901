package domain

import "time"

// SalonService represents a catalog entry: a service offered by a salon
type SalonService struct {
	ID              int64
	SalonID         int64
	Name            string
	PriceMinor      int64 // Цена в минорных единицах валюты (копейки)
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
