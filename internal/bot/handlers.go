// Package bot — handlers.go implements the menu flows: start, wallet
// linking, the NFT pitch, social links and prize history.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/wheelproject/wheel-backend/internal/common"
	"github.com/wheelproject/wheel-backend/internal/features/wheel"
)

const welcomeMessage = `🎉 Welcome to Wheel Project Bot!

💰 Manage your wallet for token distribution
🎨 Get exclusive NFT access
📱 Stay connected with our community

Choose an option from the menu below:`

const playPrompt = "🎮 Ready to play?\nClick the button below to spin the wheel!"

const nftMessage = `🎨 Exclusive NFT Drop – Unlock Early Access & Trading Bot!

🚀 Get Your NFT Now: https://app.memeseason.xyz?referralCode=F06-3

What You Gain:
✅ Exclusive DEX Trading Bot – Automate your trades with our unique tool.
✅ First-in Presale Access – Secure your spot in the earliest token rounds (potential 50x+ opportunities!).

⏳ Don't Miss Out – Limited Availability!`

const socialMessage = `📱 Stay Connected for Updates & Exclusive Opportunities!

🔹 Join our Discord: https://discord.gg/UPp44ykX
🔹 Follow us on Telegram: https://t.me/c/2490854146/63

Be the first to get alpha on new listings, tools, and community rewards!`

// handleStart registers the account (applying a referral code from the
// deep link, if any) and shows the main menu plus the play button.
func (b *Bot) handleStart(ctx context.Context, chatID, userID int64, from *tgbotapi.User, referralCode string) {
	var alias *string
	if from.UserName != "" {
		alias = &from.UserName
	}

	if _, err := b.accounts.GetOrCreate(ctx, userID, displayName(from), alias, referralCode); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to register account on /start")
		b.sendMessage(chatID, "Sorry, there was an error. Please try again.")
		return
	}

	b.sendMenu(chatID, welcomeMessage)
}

// handleMenuInput routes reply-keyboard presses and free-text input.
func (b *Bot) handleMenuInput(ctx context.Context, chatID, userID int64, text string) {
	switch text {
	case btnBackToMenu:
		b.states.clear(userID)
		b.sendMenu(chatID, welcomeMessage)

	case btnMyWallet:
		b.handleMyWallet(ctx, chatID, userID)

	case btnDeleteWallet:
		b.handleDeleteWallet(ctx, chatID, userID)

	case btnBuyNFT:
		b.sendWithMarkup(chatID, nftMessage, backToMenuKeyboard())

	case btnSocialMedia:
		b.sendWithMarkup(chatID, socialMessage, backToMenuKeyboard())

	case btnMyPrizes:
		b.handleMyPrizes(ctx, chatID, userID)

	default:
		if b.states.get(userID) == stateWaitingForWallet {
			b.handleWalletInput(ctx, chatID, userID, text)
			return
		}
		// unrecognized text: steer back to the menu
		b.sendMenu(chatID, "Please use the buttons below to navigate:")
	}
}

// handleMyWallet shows the linked wallet or asks for an address.
func (b *Bot) handleMyWallet(ctx context.Context, chatID, userID int64) {
	a, err := b.accounts.GetByID(ctx, userID)
	if err != nil {
		b.sendWithMarkup(chatID, "Error: User not found. Please use /start to begin.", backToMenuKeyboard())
		return
	}

	if a.WalletAddress != nil {
		text := fmt.Sprintf("💰 Your Wallet\n\nConnected wallet: `%s`\n\nYour wallet is successfully linked to our platform.", *a.WalletAddress)
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		msg.ReplyMarkup = walletMenuKeyboard()
		b.send(msg)
		return
	}

	b.sendWithMarkup(chatID, "💰 Share Your SOL Wallet Address for Post-Listing Token Distribution\n\nPlease send your Solana wallet address:", backToMenuKeyboard())
	b.states.set(userID, stateWaitingForWallet)
}

// handleWalletInput validates and stores a wallet address sent as free text.
func (b *Bot) handleWalletInput(ctx context.Context, chatID, userID int64, text string) {
	if err := b.accounts.SetWalletAddress(ctx, userID, &text); err != nil {
		if errors.Is(err, common.ErrInvalidWalletAddress) {
			b.sendMessage(chatID, "❌ Invalid Solana wallet address format. Please send a valid Solana wallet address (32-44 characters, base58 encoded).")
			return
		}
		log.WithError(err).WithField("user_id", userID).Error("failed to link wallet")
		b.sendMessage(chatID, "Sorry, there was an error. Please try again.")
		return
	}

	b.states.clear(userID)
	b.sendMenu(chatID, "✅ Thank you! Your SOL wallet has been successfully linked. We will distribute your tokens after the listing.")
}

// handleDeleteWallet unlinks the wallet.
func (b *Bot) handleDeleteWallet(ctx context.Context, chatID, userID int64) {
	if err := b.accounts.SetWalletAddress(ctx, userID, nil); err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to unlink wallet")
		b.sendMessage(chatID, "Sorry, there was an error. Please try again.")
		return
	}

	b.sendWithMarkup(chatID, "✅ Your SOL wallet has been successfully unlinked from our platform. No further actions are required.", backToMenuKeyboard())
}

// handleMyPrizes shows up to the last ten spin outcomes.
func (b *Bot) handleMyPrizes(ctx context.Context, chatID, userID int64) {
	prizes, err := b.spins.RecentPrizes(ctx, userID, 10)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("failed to load prize history")
		b.sendMessage(chatID, "Sorry, there was an error. Please try again.")
		return
	}

	if len(prizes) == 0 {
		b.sendWithMarkup(chatID, "🎁 No prizes yet. Spin the wheel to win your first one!", backToMenuKeyboard())
		return
	}

	var sb strings.Builder
	sb.WriteString("🎁 Your latest prizes:\n\n")
	for _, p := range prizes {
		sb.WriteString(formatPrizeLine(p))
		sb.WriteByte('\n')
	}

	if a, err := b.accounts.GetByID(ctx, userID); err == nil {
		if wheel.CanSpin(a.LastSpin, a.BonusSpins) {
			sb.WriteString("\n🎰 Your next spin is ready!")
		} else {
			hours, minutes := wheel.TimeUntilNextSpin(a.LastSpin)
			sb.WriteString(fmt.Sprintf("\n⏳ Next free spin in %s", common.FormatCooldown(hours, minutes)))
		}
	}
	b.sendWithMarkup(chatID, sb.String(), backToMenuKeyboard())
}

func formatPrizeLine(p *wheel.Prize) string {
	date := p.CreatedAt.Format("02 Jan 15:04")
	switch p.PrizeType {
	case wheel.KindCoins:
		var amount int64
		if p.Amount != nil {
			amount = *p.Amount
		}
		return fmt.Sprintf("💰 %s  (%s)", common.FormatCoins(amount), date)
	case wheel.KindNFT:
		return fmt.Sprintf("🎨 NFT  (%s)", date)
	default:
		return fmt.Sprintf("😢 Nothing  (%s)", date)
	}
}

// sendMenu sends the main menu followed by the play button.
func (b *Bot) sendMenu(chatID int64, text string) {
	b.sendWithMarkup(chatID, text, mainMenuKeyboard())
	b.sendWithMarkup(chatID, playPrompt, webAppKeyboard(b.cfg.WebAppURL))
}

// sendMessage sends a plain text message.
func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	b.send(msg)
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("chat_id", msg.ChatID).Error("failed to send message")
	}
}

// SendMessageToUser sends a DM (used by the reminder job).
func (b *Bot) SendMessageToUser(userID int64, text string) {
	msg := tgbotapi.NewMessage(userID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.WithError(err).WithField("user_id", userID).Debug("failed to deliver reminder")
	}
}

// displayName mirrors the mini-app's naming: first + last name, falling
// back to User_<id>.
func displayName(from *tgbotapi.User) string {
	name := strings.TrimSpace(strings.TrimSpace(from.FirstName) + " " + strings.TrimSpace(from.LastName))
	if name == "" {
		name = fmt.Sprintf("User_%d", from.ID)
	}
	return name
}
