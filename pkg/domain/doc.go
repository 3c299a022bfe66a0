// Package domain contains the core domain entities and value objects used by
// the application. These types represent the business concepts (users,
// discounts, validated emails and geographic locations) and are intentionally
// free of infrastructure concerns so they can be shared across packages.
package domain
