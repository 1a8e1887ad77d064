package model

import (
	"regexp"
	"time"
)

// Customer is keyed by mobile number. The cumulative counters are maintained
// exclusively by the order engine: every committed order adds to spend/visits,
// every cancellation reverses the original order's amounts and bumps
// cancelled_orders.
type Customer struct {
	Mobile          string    `gorm:"type:varchar(20);primaryKey" json:"mobile" validate:"required"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email           string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	TotalSpent      float64   `gorm:"default:0" json:"total_spent"`
	TotalVisits     int       `gorm:"default:0" json:"total_visits"`
	CancelledOrders int       `gorm:"default:0" json:"cancelled_orders"`
	JoinedAt        time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

// Per-country mobile number patterns. India is the default market.
var mobilePatterns = map[string]*regexp.Regexp{
	"IN": regexp.MustCompile(`^[6-9]\d{9}$`),
	"US": regexp.MustCompile(`^\d{10}$`),
	"UK": regexp.MustCompile(`^\d{10,11}$`),
}

var mobileFallback = regexp.MustCompile(`^\d{8,15}$`)

// ValidMobile reports whether mobile matches the numeric pattern for the
// given ISO country code. Unknown countries get a generic digits-only check.
func ValidMobile(country, mobile string) bool {
	re, ok := mobilePatterns[country]
	if !ok {
		re = mobileFallback
	}
	return re.MatchString(mobile)
}
