package notification

import (
	"strconv"
	"strings"

	"github.com/marcelsud/discord-sale-notifier/discord"
	"github.com/marcelsud/discord-sale-notifier/order"
)

// Title of every sale embed
const Title = "🎉 New Sale!"

// BuildEmbed renders an order as a Discord embed; field order is fixed
func BuildEmbed(o order.Order, color int) discord.Embed {
	return discord.Embed{
		Title: Title,
		Fields: []discord.Field{
			{Name: "Order Number", Value: strconv.FormatInt(o.ID, 10), Inline: true},
			{Name: "Order Date", Value: o.FormattedDate(), Inline: true},
			{Name: "Order Total", Value: o.Total + " " + o.Currency, Inline: true},
			{Name: "Items", Value: JoinItems(o.Items)},
			{Name: "Email", Value: o.BillingEmail, Inline: true},
			{Name: "Payment Method", Value: o.PaymentMethodTitle, Inline: true},
		},
		Color: color,
	}
}

// JoinItems lists item names separated by ", "; no items gives ""
// Trailing commas and spaces are trimmed, including any the last name ends with
func JoinItems(items []string) string {
	return strings.TrimRight(strings.Join(items, ", "), ", ")
}
