package reactions

import "strings"

// Symbol is an emoji offered as a drill-down selector, in its message form:
// a unicode emoji or a custom emoji like "<:keycap_11:895381504023199825>".
type Symbol string

// Symbols is the fixed assignment order, keycaps 1 to 20.
var Symbols = [...]Symbol{
	"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟",
	"<:keycap_11:895381504023199825>",
	"<:keycap_12:895381503977087026>",
	"<:keycap_13:895381504048386078>",
	"<:keycap_14:895381504467824691>",
	"<:keycap_15:895381504560095322>",
	"<:keycap_16:895381504505557032>",
	"<:keycap_17:895381504576864296>",
	"<:keycap_18:895381504983719937>",
	"<:keycap_19:895381504476196864>",
	"<:keycap_20:895381504149041225>",
}

// MaxSymbols is the number of entities one message can offer for drill-down.
const MaxSymbols = len(Symbols)

// APIName is the form the gateway expects when adding the reaction:
// the emoji itself, or "name:id" for a custom emoji.
func (s Symbol) APIName() string {
	str := string(s)
	if strings.HasPrefix(str, "<") && strings.HasSuffix(str, ">") {
		str = strings.TrimSuffix(strings.TrimPrefix(str, "<"), ">")
		str = strings.TrimPrefix(strings.TrimPrefix(str, "a"), ":")
	}
	return str
}

// FromEmoji rebuilds a Symbol from a reaction event's emoji name and id.
func FromEmoji(name, id string) Symbol {
	if id == "" {
		return Symbol(name)
	}
	return Symbol("<:" + name + ":" + id + ">")
}
