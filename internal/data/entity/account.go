package entity

import (
	"time"
)

type SubscriptionTier string

const (
	TierFree      SubscriptionTier = "free"
	TierBasic     SubscriptionTier = "basic"
	TierPremium   SubscriptionTier = "premium"
	TierUnlimited SubscriptionTier = "unlimited"
)

// Account is the root ledger entity. The id is derived from the authenticated
// identity and the row is created on first authenticated access. Accounts are
// never hard-deleted; frozen is soft state only.
type Account struct {
	Base
	Email        string            `db:"email"`
	Credits      int               `db:"credits"`
	Frozen       bool              `db:"frozen"`
	FrozenAt     *time.Time        `db:"frozen_at"`
	Tier         SubscriptionTier  `db:"tier"`
	PreviousTier *SubscriptionTier `db:"previous_tier"`
	BillingRef   *string           `db:"billing_ref"`
}
