package gateway

import (
	"github.com/bwmarrin/discordgo"

	"github.com/MrSnakeDoc/slapp/internal/embed"
)

// toMessageEmbed converts a page to the platform's rich embed.
func toMessageEmbed(page embed.Page) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       page.Title,
		Description: page.Description,
		Color:       int(page.Colour),
		Type:        discordgo.EmbedTypeRich,
	}
	if page.Author != "" {
		e.Author = &discordgo.MessageEmbedAuthor{Name: page.Author}
	}
	if page.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: page.Footer}
	}
	if len(page.Fields) > 0 {
		e.Fields = make([]*discordgo.MessageEmbedField, 0, len(page.Fields))
		for _, f := range page.Fields {
			e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
				Name:   f.Name,
				Value:  f.Value,
				Inline: f.Inline,
			})
		}
	}
	return e
}

// messageSend builds the payload for a page, replying to replyTo when set.
func messageSend(channelID, replyTo string, page embed.Page) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{toMessageEmbed(page)},
	}
	if replyTo != "" {
		send.Reference = &discordgo.MessageReference{
			MessageID: replyTo,
			ChannelID: channelID,
		}
		send.AllowedMentions = &discordgo.MessageAllowedMentions{RepliedUser: false}
	}
	return send
}
