package api

import (
	"net/http"

	"outreach-server/internal/access"
	analysisHandler "outreach-server/internal/analysis/handler"
	authHandler "outreach-server/internal/auth/handler"
	campaignHandler "outreach-server/internal/campaign/handler"
	chatHandler "outreach-server/internal/chat/handler"
	dashboardHandler "outreach-server/internal/dashboard/handler"
	draftHandler "outreach-server/internal/drafts/handler"
	messageHandler "outreach-server/internal/messages/handler"
	"outreach-server/internal/observability"
	"outreach-server/internal/ratelimit"
	settingsHandler "outreach-server/internal/settings/handler"
	teamHandler "outreach-server/internal/team/handler"

	"github.com/gin-gonic/gin"
)

// Handlers groups every feature handler mounted under /api
type Handlers struct {
	Auth      authHandler.Handler
	Analysis  analysisHandler.Handler
	Drafts    draftHandler.Handler
	Campaigns campaignHandler.Handler
	Messages  messageHandler.Handler
	Settings  settingsHandler.Handler
	Team      teamHandler.Handler
	Dashboard dashboardHandler.Handler
	Chat      chatHandler.Handler
}

type API struct {
	router      *gin.RouterGroup
	handlers    Handlers
	rateLimiter *ratelimit.Service
	healthCheck func(c *gin.Context) error

	// authenticate guards /api/protected
	authenticate gin.HandlerFunc
}

// New mounts the API on router. healthCheck may be nil.
func New(router *gin.RouterGroup, handlers Handlers, rateLimiter *ratelimit.Service, healthCheck func(c *gin.Context) error) API {
	return API{
		router:       router,
		handlers:     handlers,
		rateLimiter:  rateLimiter,
		healthCheck:  healthCheck,
		authenticate: handlers.Auth.HandleJWTMiddleware,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	a.router.GET("/metrics", observability.MetricsHandler())

	h := a.handlers
	limited := a.rateLimiter.Middleware()
	moderate := access.Require(access.CanModerate)
	manageCampaigns := access.Require(access.CanManageCampaigns)
	manageTeam := access.Require(access.CanManageTeam)

	apiGroup := a.router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		authGroup.POST("/signup", h.Auth.HandleSignup)
		authGroup.POST("/signin", h.Auth.HandleSignIn)
	}

	protectedGroup := apiGroup.Group("/protected", a.authenticate)
	{
		protectedGroup.GET("/session", h.Auth.HandleSession)
		protectedGroup.POST("/signout", h.Auth.HandleSignOut)
		protectedGroup.GET("/dashboard", h.Dashboard.HandleGetDashboard)

		// Page intake
		protectedGroup.POST("/analyses", limited, h.Analysis.HandleCreateAnalysis)
		protectedGroup.POST("/analyze", limited, h.Analysis.HandleAnalyzePage)
		protectedGroup.GET("/analyses", h.Analysis.HandleListAnalyses)
		protectedGroup.GET("/analyses/:analysis_id", h.Analysis.HandleGetAnalysis)
		protectedGroup.DELETE("/analyses/:analysis_id", h.Analysis.HandleDeleteAnalysis)

		// Drafts
		protectedGroup.GET("/drafts/candidates", h.Drafts.HandleListCandidates)
		protectedGroup.POST("/drafts", h.Drafts.HandleCreateDraft)
		protectedGroup.POST("/create-proposal", h.Drafts.HandleCreateProposal)
		protectedGroup.GET("/drafts", h.Drafts.HandleListDrafts)
		protectedGroup.GET("/drafts/:draft_id", h.Drafts.HandleGetDraft)
		protectedGroup.PUT("/drafts/:draft_id", moderate, h.Drafts.HandleUpdateDraft)
		protectedGroup.PUT("/drafts/:draft_id/campaign", moderate, h.Drafts.HandleSetCampaign)
		protectedGroup.POST("/drafts/:draft_id/approve", moderate, h.Drafts.HandleApproveDraft)
		protectedGroup.POST("/drafts/:draft_id/reject", moderate, h.Drafts.HandleRejectDraft)
		protectedGroup.POST("/drafts/:draft_id/send", moderate, h.Drafts.HandleSendDraft)

		// Campaigns
		protectedGroup.GET("/campaigns", h.Campaigns.HandleListCampaigns)
		protectedGroup.GET("/campaigns/:campaign_id", h.Campaigns.HandleGetCampaign)
		protectedGroup.POST("/campaigns", manageCampaigns, h.Campaigns.HandleCreateCampaign)
		protectedGroup.PUT("/campaigns/:campaign_id/status", manageCampaigns, h.Campaigns.HandleUpdateCampaignStatus)
		protectedGroup.DELETE("/campaigns/:campaign_id", manageCampaigns, h.Campaigns.HandleDeleteCampaign)

		// Messages
		protectedGroup.GET("/messages", h.Messages.HandleListMessages)
		protectedGroup.POST("/replies/:reply_id/read", h.Messages.HandleMarkReplyRead)

		// Settings
		protectedGroup.GET("/settings", h.Settings.HandleListSettings)
		protectedGroup.PUT("/settings", access.Require(access.CanEditSettings), h.Settings.HandleUpdateSettings)

		// Team
		teamGroup := protectedGroup.Group("/team", manageTeam)
		teamGroup.GET("", h.Team.HandleListUsers)
		teamGroup.POST("/:user_id/approve", h.Team.HandleApproveUser)
		teamGroup.POST("/:user_id/reject", h.Team.HandleRejectUser)
		teamGroup.POST("/:user_id/ban", h.Team.HandleBanUser)
		teamGroup.POST("/:user_id/unban", h.Team.HandleUnbanUser)
		teamGroup.PUT("/:user_id/role", h.Team.HandleChangeRole)
		teamGroup.DELETE("/:user_id", h.Team.HandleDeleteUser)
		protectedGroup.POST("/delete-user", manageTeam, h.Team.HandleDeleteUserByBody)

		// Chat
		protectedGroup.POST("/chat", limited, h.Chat.HandleChat)
		protectedGroup.POST("/minichat", limited, h.Chat.HandleChat)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		if a.healthCheck != nil {
			if err := a.healthCheck(c); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
