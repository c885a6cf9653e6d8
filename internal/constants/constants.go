package constants

const (
	AppMainStorefront = "nexora"
	AppStorefront     = "nexora-storefront"
	AppSeeder         = "nexora-seeder"
)
