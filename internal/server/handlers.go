// Package server — handlers.go implements the three wheel endpoints.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/common"
	"github.com/wheelproject/wheel-backend/internal/features/wheel"
)

// handleGet returns everything the mini-app needs to render the wheel
// screen: eligibility, cooldown remainder, balances and referral info.
func (s *Server) handleGet(c *gin.Context) {
	a := currentAccount(c)

	hours, minutes := wheel.TimeUntilNextSpin(a.LastSpin)

	invited, err := s.accounts.CountReferred(c.Request.Context(), a.ID)
	if err != nil {
		log.WithError(err).WithField("account_id", a.ID).Error("failed to count referred accounts")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "err": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":      true,
		"canSpin": wheel.CanSpin(a.LastSpin, a.BonusSpins),
		"timeUntilNextSpin": gin.H{
			"hours":   hours,
			"minutes": minutes,
		},
		"balances": gin.H{
			"coins": a.Coins,
			"nft":   a.NFT,
		},
		"walletAddress":     a.WalletAddress,
		"referralCode":      a.ReferralCode,
		"bonusSpins":        a.BonusSpins,
		"invitedUsersCount": invited,
		"botConfig": gin.H{
			"botUsername": s.cfg.TelegramBotUsername,
		},
	})
}

// handleSetWallet links or clears the wallet address.
func (s *Server) handleSetWallet(c *gin.Context) {
	a := currentAccount(c)
	req := currentPayload(c)

	// Length gate first: addresses outside 32-44 characters are rejected
	// up front, matching the mini-app's own validation.
	if req.WalletAddress != nil && (len(*req.WalletAddress) < 32 || len(*req.WalletAddress) > 44) {
		c.JSON(http.StatusOK, gin.H{"ok": false, "err": "Invalid wallet address format"})
		return
	}

	err := s.accounts.SetWalletAddress(c.Request.Context(), a.ID, req.WalletAddress)
	if err != nil {
		if errors.Is(err, common.ErrInvalidWalletAddress) {
			c.JSON(http.StatusOK, gin.H{"ok": false, "err": "Invalid wallet address format"})
			return
		}
		log.WithError(err).WithField("account_id", a.ID).Error("failed to set wallet address")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "err": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// handleRoll runs one spin and reports the outcome to the animation.
func (s *Server) handleRoll(c *gin.Context) {
	a := currentAccount(c)

	result, err := s.spins.Spin(c.Request.Context(), a.ID)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrCooldownActive):
			c.JSON(http.StatusOK, gin.H{
				"ok":  false,
				"err": "Must wait 24 hours between spins or invite friends for bonus spins",
			})
		case errors.Is(err, common.ErrSpinInProgress):
			c.JSON(http.StatusOK, gin.H{"ok": false, "err": "Spin already in progress"})
		default:
			log.WithError(err).WithField("account_id", a.ID).Error("spin failed")
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "err": "Server error"})
		}
		return
	}

	resp := gin.H{
		"ok":            true,
		"result":        result.Sector,
		"prizeType":     result.Outcome.Kind(),
		"usedBonusSpin": result.UsedBonusSpin,
	}
	if amount, ok := result.Outcome.CoinAmount(); ok {
		resp["prizeAmount"] = amount
	}

	c.JSON(http.StatusOK, resp)
}
