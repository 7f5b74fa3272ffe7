package models

import "time"

// Планы подписки, доступные на платформе.
const (
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Статусы подписки.
const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
	SubscriptionStatusExpired   = "expired"
)

// Subscription представляет подписку пользователя на платформу.
// На одного пользователя приходится одна строка (upsert-семантика).
// EndDate может быть nil — такая подписка никогда не считается активной.
type Subscription struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"userId"`
	PlanType             string     `json:"planType"`
	Status               string     `json:"status"`
	StartDate            time.Time  `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	StripeSubscriptionID *string    `json:"stripeSubscriptionId"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}
