// Package server — identity.go resolves the Telegram identity envelope.
//
// The request body carries initData with the already-verified user (the
// verification itself belongs to the Telegram web-app layer in front of
// us); the middleware trusts it, loads or creates the account, applying
// a referral code on first contact, and attaches the account to the
// request context.
package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/features/account"
)

const accountKey = "account"
const payloadKey = "payload"

// wheelRequest is the common body shape of every /api/wheel endpoint.
type wheelRequest struct {
	InitData      *initData `json:"initData"`
	ReferralCode  string    `json:"referralCode"`
	WalletAddress *string   `json:"walletAddress"`
}

type initData struct {
	User *initDataUser `json:"user"`
}

type initDataUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// displayName builds the human label stored on the account.
func (u *initDataUser) displayName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		name = fmt.Sprintf("User_%d", u.ID)
	}
	return name
}

func (s *Server) identityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req wheelRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.InitData == nil || req.InitData.User == nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"ok":  false,
				"err": "Invalid request: No initData provided",
			})
			return
		}

		user := req.InitData.User
		var alias *string
		if user.Username != "" {
			alias = &user.Username
		}

		a, err := s.accounts.GetOrCreate(c.Request.Context(), user.ID, user.displayName(), alias, req.ReferralCode)
		if err != nil {
			log.WithError(err).WithField("user_id", user.ID).Error("failed to resolve account")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"ok":  false,
				"err": "Server error",
			})
			return
		}

		c.Set(accountKey, a)
		c.Set(payloadKey, &req)
		c.Next()
	}
}

// currentAccount pulls the account the middleware attached.
func currentAccount(c *gin.Context) *account.Account {
	return c.MustGet(accountKey).(*account.Account)
}

// currentPayload pulls the parsed request body.
func currentPayload(c *gin.Context) *wheelRequest {
	return c.MustGet(payloadKey).(*wheelRequest)
}
