// Package bot — keyboards.go builds the reply and inline keyboards.
package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Button captions. The reply keyboard echoes the caption back as message
// text, so routing matches on these exact strings.
const (
	btnMyWallet     = "💰 My Wallet"
	btnBuyNFT       = "🎨 Buy NFT"
	btnSocialMedia  = "📱 Social Media"
	btnMyPrizes     = "🎁 My Prizes"
	btnDeleteWallet = "🗑️ Delete Wallet"
	btnBackToMenu   = "⬅️ Back to Menu"
)

// mainMenuKeyboard is the persistent bottom menu.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMyWallet),
			tgbotapi.NewKeyboardButton(btnBuyNFT),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnMyPrizes),
			tgbotapi.NewKeyboardButton(btnSocialMedia),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// walletMenuKeyboard is shown while a wallet is linked.
func walletMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnDeleteWallet),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBackToMenu),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func backToMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnBackToMenu),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

// webAppKeyboard is the inline button that opens the mini-app.
// The tagged tgbotapi release predates web_app buttons, so the markup is
// declared raw; ReplyMarkup is serialized to JSON as-is.
type webAppInfo struct {
	URL string `json:"url"`
}

type webAppButton struct {
	Text   string     `json:"text"`
	WebApp webAppInfo `json:"web_app"`
}

type webAppMarkup struct {
	InlineKeyboard [][]webAppButton `json:"inline_keyboard"`
}

func webAppKeyboard(url string) webAppMarkup {
	return webAppMarkup{
		InlineKeyboard: [][]webAppButton{
			{{Text: "🎰 Spin the Wheel", WebApp: webAppInfo{URL: url}}},
		},
	}
}
