package soundboard

import (
	"fmt"
	"strconv"
	"strings"

	embed "github.com/Clinet/discordgo-embed"

	"github.com/dorinm/sunetbot/internal/command"
)

type SoundsCommand struct{ base }

func (c *SoundsCommand) Name() string        { return "sounds" }
func (c *SoundsCommand) Description() string { return "List available sound clips, one page at a time" }

func (c *SoundsCommand) Run(ctx *command.Context) error {
	page := 1
	if len(ctx.Args) > 0 {
		n, err := strconv.Atoi(ctx.Args[0])
		if err != nil || n < 1 {
			ctx.Reply("Must provide a page number")
			return nil
		}
		page = n
	}
	names, ok := c.deps.Library.Page(page)
	if !ok {
		ctx.Reply("No sounds on that page")
		return nil
	}
	ctx.ReplyEmbed(embed.NewGenericEmbed(
		fmt.Sprintf("Sounds, page %d", page),
		"%s",
		strings.Join(names, "\n"),
	))
	return nil
}
