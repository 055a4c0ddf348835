package presenter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/MrSnakeDoc/slapp/internal/domain"
	"github.com/MrSnakeDoc/slapp/internal/embed"
	"github.com/MrSnakeDoc/slapp/internal/logger"
	"github.com/MrSnakeDoc/slapp/internal/reactions"
)

const (
	iconTop500   = "⭐"
	iconPlus     = "➕"
	iconTrophy   = "🏆"
	iconTwitch   = "📺"
	iconTwitter  = "🐦"
	iconBattlefy = "🎮"
	iconDiscord  = "💬"

	// A single player gets the detailed view unless the answer also
	// carries this many teams.
	detailedTeamLimit = 14

	tourneysPerTeam  = 3
	membersPerField  = 5
	memberFields     = 10
	namesPerMember   = 9
	summaryTeamShare = 3 * embed.FieldValueLimit / 4
)

// view renders one answer. It is request local and never shared.
type view struct {
	*Presenter
	b       *embed.Builder
	symbols *reactions.Index
	players int
	teams   int
}

// guard runs render and turns a panic into an error field.
func (v *view) guard(name string, render func()) {
	defer func() {
		if r := recover(); r != nil {
			v.log.Error("render failed", logger.String("field", name), logger.String("panic", fmt.Sprint(r)))
			v.b.AddField(name, fmt.Sprint(r))
		}
	}()
	render()
}

// pointer is the drill-down affordance appended to summary fields.
func (v *view) pointer(e domain.Entity) string {
	if s, ok := v.symbols.Assign(e); ok {
		return fmt.Sprintf("\n React %s for more…\n", s)
	}
	return fmt.Sprintf("\n More info: %sfull %s\n", v.opts.CommandPrefix, e.EntityID())
}

// withPointer appends the pointer to body, shortening body so both fit a field.
func withPointer(body, pointer string) string {
	if len([]rune(body))+len([]rune(pointer)) >= embed.FieldValueLimit {
		body = embed.CloseFences(embed.Truncate(body, embed.FieldValueLimit-4-len([]rune(pointer)), embed.Ellipsis))
	}
	return body + pointer
}

// ─────────────────────────────────────────────────────────────────
// Players
// ─────────────────────────────────────────────────────────────────

func (v *view) player(p *domain.Player) {
	name := embed.SafeBackticks(p.Name())
	head := name
	if p.Top500 {
		head = iconTop500 + " " + head
	}
	if p.Country != "" {
		head = p.Country + " " + head
	}

	otherNames := ""
	if others := p.OtherNames(); len(others) > 0 {
		clipped := make([]string, 0, len(others))
		for _, n := range others {
			clipped = append(clipped, embed.Truncate(n, embed.FieldNameLimit, embed.Ellipsis))
		}
		otherNames = embed.Truncate("_ᴬᴷᴬ_ ```\n"+strings.Join(clipped, "\n")+"```\n", 1000, "…\n```\n")
	}

	detailed := v.players == 1 && v.teams < detailedTeamLimit
	current, oldTeams := v.playerTeams(p, detailed)
	notable := v.notableLines(p, detailed)

	if detailed {
		v.b.AddField(head, otherNames, embed.DefaultName("(Unnamed Player)"), embed.DefaultValue("(No other names)"))
		v.b.AddField("FCs:", embed.Plural(len(p.FriendCodes), "known friend code"))
		if current != "" {
			v.b.AddField("Current team:", current)
		}
		v.b.AddUnrolledList("Old teams", oldTeams)
		v.b.AddUnrolledList("Twitch", socials(iconTwitch, p.Twitch))
		v.b.AddUnrolledList("Twitter", socials(iconTwitter, p.Twitter))
		v.b.AddUnrolledList("Battlefy", socials(iconBattlefy, p.Battlefy))
		v.b.AddUnrolledList("Discord", socials(iconDiscord, p.Discord))
		v.b.AddUnrolledList("Notable Wins", notable)
		v.b.AddUnrolledList("Weapons", p.Weapons, embed.Separator(", "))
		v.b.AddUnrolledList("Sources", domain.GroupedSourceLines(p))
		return
	}

	var body strings.Builder
	body.WriteString(otherNames)
	body.WriteString(current)
	if len(oldTeams) > 0 {
		old := "Old teams:\n" + strings.Join(oldTeams, "\n") + "\n"
		body.WriteString(embed.CloseFences(embed.Truncate(old, summaryTeamShare, embed.Ellipsis)))
	}
	if n := len(p.FriendCodes); n > 0 {
		body.WriteString(embed.Plural(n, "known friend code") + "\n")
	}
	var social []string
	for _, group := range [][]string{
		socials(iconTwitch, p.Twitch),
		socials(iconTwitter, p.Twitter),
		socials(iconBattlefy, p.Battlefy),
		socials(iconDiscord, p.Discord),
	} {
		social = append(social, group...)
	}
	if len(social) > 0 {
		body.WriteString(embed.Truncate(strings.Join(social, "\n"), embed.FieldValueLimit, embed.Ellipsis) + "\n")
	}
	if len(notable) > 0 {
		body.WriteString(strings.Join(notable, "\n") + "\n")
	}

	text := embed.Or(body.String(), "(Nothing else to say)\n")
	text += "Sources:\n" + strings.Join(domain.GroupedSourceLines(p), "\n")
	v.b.AddField(head, withPointer(text, v.pointer(p)), embed.DefaultName("(Unnamed Player)"))
}

// playerTeams renders the current team and the older ones. The detailed
// view offers a symbol per team and lists the tourneys played for it.
func (v *view) playerTeams(p *domain.Player, detailed bool) (current string, old []string) {
	stints := v.roster.TeamsOf(p)
	if len(stints) == 0 {
		return "", nil
	}

	first := stints[0]
	if detailed {
		var sb strings.Builder
		if s, ok := v.symbols.Assign(first.Team); ok {
			fmt.Fprintf(&sb, "Plays for:\n%s %s\n", s, embed.WrapInBackticks(first.Team.Name()))
			sb.WriteString(tourneys(first.Sources))
		}
		current = sb.String()
	}
	if current == "" {
		current = "Plays for: " + embed.WrapInBackticks(first.Team.Name()) + "\n"
	}

	for _, stint := range stints[1:] {
		if !detailed {
			old = append(old, embed.WrapInBackticks(stint.Team.Name()))
			continue
		}
		line := embed.WrapInBackticks(stint.Team.Name()) + " " + tourneys(stint.Sources)
		if s, ok := v.symbols.Assign(stint.Team); ok {
			line = string(s) + " " + line
		}
		old = append(old, strings.TrimSpace(line))
	}
	return current, old
}

// tourneys lists the latest few sources, newest first.
func tourneys(sources []*domain.Source) string {
	if len(sources) == 0 {
		return ""
	}
	sorted := slices.Clone(sources)
	slices.SortStableFunc(sorted, func(a, b *domain.Source) int { return b.Date.Compare(a.Date) })

	shown := make([]string, 0, tourneysPerTeam)
	for _, s := range capped(sorted, tourneysPerTeam) {
		shown = append(shown, s.LinkedNameDisplay())
	}
	out := strings.Join(shown, ", ")
	if more := len(sorted) - tourneysPerTeam; more > 0 {
		out += fmt.Sprintf(" +%d other tourneys…", more)
	}
	return out
}

// notableLines lists plus memberships, newest first, then first places.
// The summary view only keeps the latest membership.
func (v *view) notableLines(p *domain.Player, detailed bool) []string {
	plus := slices.Clone(p.Plus)
	slices.SortStableFunc(plus, func(a, b domain.PlusMembership) int { return b.Date.Compare(a.Date) })
	if !detailed {
		plus = capped(plus, 1)
	}

	var lines []string
	for _, m := range plus {
		lines = append(lines, fmt.Sprintf("%s +%d member (%s)", iconPlus, m.Level, m.Date.Format("Jan 2006")))
	}
	for _, w := range v.roster.WinsOf(p) {
		line := fmt.Sprintf("%s Won %s in %s", iconTrophy, w.Bracket, w.Source.LinkedNameDisplay())
		if w.Team != nil {
			line += " for team " + embed.WrapInBackticks(embed.Truncate(w.Team.Name(), 64, embed.Ellipsis))
		}
		lines = append(lines, line)
	}
	return lines
}

func socials(icon string, handles []domain.Social) []string {
	out := make([]string, 0, len(handles))
	for _, h := range handles {
		out = append(out, icon+" "+h.Display())
	}
	return out
}

// ─────────────────────────────────────────────────────────────────
// Teams
// ─────────────────────────────────────────────────────────────────

func (v *view) team(t *domain.Team) {
	members := v.roster.PlayersOf(t)
	division := ""
	if t.Division != "" {
		division = "Division: " + t.Division + "\n"
	}

	if v.teams > 1 || v.players > 0 {
		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, embed.SafeBackticks(embed.Truncate(m.Player.Name(), 48, embed.Ellipsis)))
		}
		body := division + "Players:\n" + strings.Join(names, ", ") + "\n"
		body += "Sources:\n" + strings.Join(domain.GroupedSourceLines(t), "\n")
		v.b.AddField(t.Name(), withPointer(body, v.pointer(t)), embed.DefaultName("(Unnamed Team)"))
		return
	}

	lines := make([]string, 0, len(members))
	for _, m := range members {
		line := memberLine(m.Player, m.Current)
		if s, ok := v.symbols.Assign(m.Player); ok {
			line = string(s) + " " + line
		}
		lines = append(lines, line)
	}

	tags := ""
	if len(t.ClanTags) > 0 {
		escaped := make([]string, 0, len(t.ClanTags))
		for _, tag := range t.ClanTags {
			escaped = append(escaped, embed.SafeBackticks(tag))
		}
		tags = "Tags: " + strings.Join(escaped, ", ") + "\n"
	}
	v.b.AddField(t.Name(), division+tags+" "+embed.Plural(len(members), "player"), embed.DefaultName("(Unnamed Team)"))

	if others := t.OtherNames(); len(others) > 0 {
		escaped := make([]string, 0, len(t.Names))
		for _, n := range t.Names {
			escaped = append(escaped, embed.SafeBackticks(n))
		}
		v.b.AddField("Other names:", strings.Join(escaped, ", "))
	}

	for i := 0; i < memberFields && i*membersPerField < len(lines); i++ {
		batch := lines[i*membersPerField : min((i+1)*membersPerField, len(lines))]
		v.b.AddField(fmt.Sprintf("Players (%d):", i+1), strings.Join(batch, "\n"))
	}

	if t.BattlefyURL != "" {
		v.b.AddField(iconBattlefy+" Battlefy Uri:", t.BattlefyURL)
	}
	v.b.AddField("Slapp Id:", t.ID.String())
	v.b.AddUnrolledList("Sources", domain.GroupedSourceLines(t))
}

// memberLine renders a team member with a few of their other names.
func memberLine(p *domain.Player, current bool) string {
	status := "_(Ex)_"
	if current {
		status = "_(Latest)_"
	}
	line := status + " " + embed.SafeBackticks(embed.Truncate(p.Name(), 48, embed.Ellipsis))

	others := p.OtherNames()
	if len(others) == 0 {
		return line
	}
	aka := make([]string, 0, namesPerMember)
	for _, n := range capped(others, namesPerMember) {
		aka = append(aka, embed.Truncate(n, 20, embed.Ellipsis))
	}
	line += " _ᴬᴷᴬ_ " + strings.Join(aka, ", ")
	if more := len(others) - namesPerMember; more > 0 {
		line += fmt.Sprintf(" +%d other names…", more)
	}
	return line
}
