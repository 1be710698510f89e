package store

// User ENUMs
const (
	UserRoleAdmin     = "admin"
	UserRoleModerator = "moderator"
	UserRoleAnalyst   = "analyst"
	UserRoleSales     = "sales"
)

const (
	UserStatusPendingApproval = "pending_approval"
	UserStatusActive          = "active"
	UserStatusBanned          = "banned"
)

// Analysis ENUMs
const (
	DecisionYes   = "yes"
	DecisionMaybe = "maybe"
	DecisionNo    = "no"
)

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Draft ENUMs
const (
	DraftStatusPending   = "pending"
	DraftStatusApproved  = "approved"
	DraftStatusRejected  = "rejected"
	DraftStatusSent      = "sent"
	DraftStatusScheduled = "scheduled"
)

// Campaign ENUMs
const (
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusArchived  = "archived"
)

// Message ENUMs
const (
	PlatformFacebook = "facebook"
	PlatformEmail    = "email"
)

const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusFailed    = "failed"
	MessageStatusBounced   = "bounced"
)

// Reply ENUMs
const (
	ReplyClassificationPositive  = "positive"
	ReplyClassificationNeutral   = "neutral"
	ReplyClassificationNegative  = "negative"
	ReplyClassificationSpam      = "spam"
	ReplyClassificationNeedsInfo = "needs_info"
)

// Audit entity types
const (
	EntityTypePage     = "page"
	EntityTypeAnalysis = "analysis"
	EntityTypeDraft    = "draft"
	EntityTypeCampaign = "campaign"
	EntityTypeMessage  = "message"
	EntityTypeUser     = "user"
	EntityTypeSettings = "settings"
)
