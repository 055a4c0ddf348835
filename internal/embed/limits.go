package embed

// Platform limits for a rich message, counted in characters (runes).
const (
	TitleLimit       = 256
	DescriptionLimit = 4096
	FieldCountLimit  = 25
	FieldNameLimit   = 256
	FieldValueLimit  = 1024
	FooterTextLimit  = 2048
	AuthorNameLimit  = 256
	MessageTextLimit = 2000
	TotalLimit       = 6000

	// MaxResults is the number of entities per category a single result renders.
	MaxResults = 20

	// MaxPages caps the number of pages one document can be split into.
	MaxPages = 10
)

// fieldValueBudget leaves room for a closing code fence after truncation.
const fieldValueBudget = FieldValueLimit - len(codeFence)

// Colour is a 24-bit RGB value.
type Colour int

const (
	ColourRed      Colour = 0xe74c3c
	ColourGold     Colour = 0xf1c40f
	ColourDarkGold Colour = 0xc27c0e
	ColourBlue     Colour = 0x3498db
	ColourDarkBlue Colour = 0x206694
	ColourGreen    Colour = 0x2ecc71
)
